// Package cli provides the command-line interface for stretch-reminder.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stretchreminder/internal/app"
	"stretchreminder/internal/logging"
	"stretchreminder/internal/version"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

// NewRootCmd creates the root command. Running with no subcommand starts the
// tray application.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stretch-reminder",
		Short: "Stretch Reminder - periodic desktop stretch notifications",
		Long: version.AppName + ` ` + version.Version + ` - Built: ` + version.BuildTime + `
Tray utility that reminds you to stretch at a configurable interval.

Runs in the system tray with a two-item menu (Open Settings, Exit).
Settings live in config.json next to the executable and may be edited by
hand; the running program picks up edits automatically.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logging.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cfgFile)
			if err != nil {
				return err
			}
			return a.Run()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default: config.json beside the executable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")

	rootCmd.Version = version.Version + " (" + version.BuildTime + ")"

	rootCmd.AddCommand(newAutostartCmd())

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}
