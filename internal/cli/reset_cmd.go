package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default tasks and clear the activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd, app); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to reset without confirmation: pass --yes")
				}
				if err := wizardConfirm("Reset board?", "All tasks and the activity log will be replaced.", &yes).Run(); err != nil {
					return err
				}
				if !yes {
					fmt.Fprintln(out, "Reset cancelled")
					return nil
				}
			}

			if err := app.Board.ResetToDefaults(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out, "Board reset")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
