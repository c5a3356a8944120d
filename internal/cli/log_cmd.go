package cli

import (
	"fmt"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent activity, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd, app); err != nil {
				return err
			}
			if limit < 0 {
				return fmt.Errorf("--limit must not be negative")
			}

			var entries []domain.LogEntry
			for e := range app.Activity.List() {
				if limit > 0 && len(entries) == limit {
					break
				}
				entries = append(entries, e)
			}

			title := fmt.Sprintf("Activity log (%d)", app.Activity.Len())
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox(title, formatter.FormatLog(entries, app.now())))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many entries (0 for all)")

	return cmd
}
