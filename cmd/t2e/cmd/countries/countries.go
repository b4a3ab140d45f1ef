package countries

import (
	"fmt"

	"github.com/spf13/cobra"

	"transcribe-translate/internal/app/locale"
)

// Cmd represents the countries command
var Cmd = &cobra.Command{
	Use:   "countries",
	Short: "List the supported source countries",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := locale.SupportedCountries()
		codes := locale.SupportedCountryCodes()
		for i, name := range names {
			fmt.Printf("%-20s %s\n", name, codes[i])
		}
		return nil
	},
}
