package run

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"transcribe-translate/internal/app"
	"transcribe-translate/internal/app/pipeline"
	"transcribe-translate/internal/config"
	"transcribe-translate/internal/logger"
)

var sourceURL string
var country string
var webhookURL string
var configFile string

func init() {
	Cmd.Flags().StringVarP(&sourceURL, "url", "u", "",
		"URL of the source audio/video file to transcribe")
	Cmd.Flags().StringVarP(&country, "country", "c", "",
		"Source country, by name, ISO code or name fragment (see 't2e countries')")
	Cmd.Flags().StringVarP(&webhookURL, "webhook", "w", "",
		"Webhook endpoint to notify on completion, overrides WEBHOOK_URL")
	Cmd.Flags().StringVarP(&configFile, "config", "f", "",
		"Optional YAML config file overlaying environment settings")

	Cmd.MarkFlagRequired("url")
	Cmd.MarkFlagRequired("country")
}

// Cmd represents the run command
var Cmd = &cobra.Command{
	Use:   "run",
	Short: "Run one transcription-translation invocation to completion",
	Long: `Run one transcription-translation invocation to completion

- Resolves the country to a recognition locale and translation pair
- Stages the media, drives the remote job, translates and publishes
- Prints the resulting transcripts and the shareable English link`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()
		if configFile != "" {
			var err error
			cfg, err = config.LoadFile(cfg, configFile)
			if err != nil {
				return err
			}
		}
		if webhookURL != "" {
			cfg.Webhook.URL = webhookURL
		}
		if cfg.Speech.MaxPolls == 0 {
			// roughly an hour at the default 5s interval
			cfg.Speech.MaxPolls = 720
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log := logger.MustNewLogger(false)
		defer log.Sync()

		orchestrator, err := app.InitializePipeline(cfg, log)
		if err != nil {
			return err
		}

		progress := mpb.New(mpb.WithOutput(os.Stderr))
		bar := progress.AddBar(int64(len(pipeline.Stages)),
			mpb.PrependDecorators(
				decor.Name("pipeline ", decor.WC{C: decor.DindentRight}),
				decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.OnComplete(decor.Name("", decor.WCSyncSpace), "done"),
			),
		)
		orchestrator.SetStageHook(func(stage pipeline.Stage) {
			bar.Increment()
		})

		result, outcome, err := orchestrator.Run(context.Background(), sourceURL, country)
		bar.Abort(true)
		progress.Wait()
		if err != nil {
			return err
		}

		fmt.Printf("file id:        %s\n", result.FileID)
		fmt.Printf("country:        %s (%s)\n", result.Country, result.LanguageName)
		fmt.Printf("original:       %s\n", result.OriginalText)
		fmt.Printf("english:        %s\n", result.EnglishText)
		fmt.Printf("transcript url: %s\n", outcome.TranscriptURL)
		if outcome.DeliveryErr != nil {
			fmt.Printf("notification:   %v\n", outcome.DeliveryErr)
		}
		return nil
	},
}
