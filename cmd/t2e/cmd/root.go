package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"transcribe-translate/cmd/t2e/cmd/countries"
	"transcribe-translate/cmd/t2e/cmd/run"
	"transcribe-translate/cmd/t2e/cmd/serve"
	"transcribe-translate/cmd/t2e/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "t2e",
	Short: "Transcribe remote audio/video and translate it to English",
	Long: `Transcribe remote audio/video and translate it to English.
- Downloads the source media and normalizes it to a mono 16kHz waveform
- Drives a remote batch recognition job to completion
- Translates the recognized text and persists both transcripts
- Notifies a downstream webhook when configured`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(run.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(countries.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
