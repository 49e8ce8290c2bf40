package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stretchreminder/internal/autostart"
)

// newAutostartCmd manages the run-at-login registration without starting the
// tray application, useful for scripted setups and for checking what an
// external tool may have changed.
func newAutostartCmd() *cobra.Command {
	autostartCmd := &cobra.Command{
		Use:   "autostart",
		Short: "Manage the run-at-login registration",
	}

	autostartCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether the application is registered to run at login",
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := autostart.New().Enabled()
			if err != nil {
				return err
			}
			if enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "enabled")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "disabled")
			}
			return nil
		},
	})

	autostartCmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Register the application to run at login",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := autostart.New().Set(true); err != nil {
				return fmt.Errorf("failed to enable run-at-login: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "run-at-login enabled")
			return nil
		},
	})

	autostartCmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Remove the run-at-login registration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := autostart.New().Set(false); err != nil {
				return fmt.Errorf("failed to disable run-at-login: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "run-at-login disabled")
			return nil
		},
	})

	return autostartCmd
}
