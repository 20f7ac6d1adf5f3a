// Package cli implements kycctl, an offline tool for checking KYC
// submissions against the intake rules without uploading anything.
package cli

import (
	"github.com/spf13/cobra"

	"kycintake/internal/config"
)

// cfg is loaded from the environment once a command runs. Flags that are
// not set on the command line fall back to it.
var cfg *config.AppConfig

var rootCmd = &cobra.Command{
	Use:           "kycctl",
	Short:         "Inspect KYC submissions offline",
	Long:          `Categorize owner files and validate business KYC submissions locally using the same rules as the intake API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		return nil
	},
}

// strictFlag returns the --strict value, or KYC_STRICT_FILENAMES when the
// flag was not given.
func strictFlag(cmd *cobra.Command, value bool) bool {
	if cmd.Flags().Changed("strict") {
		return value
	}
	return cfg.KYC.StrictFilenames
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
