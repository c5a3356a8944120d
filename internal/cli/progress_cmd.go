package cli

import (
	"fmt"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show the share of tasks that are done",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd, app); err != nil {
				return err
			}
			counts := app.Board.ColumnCounts()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Progress"))
			fmt.Fprintf(out, "%s done\n", formatter.RenderProgress(app.Board.Progress(), 20))
			for _, col := range domain.Columns {
				fmt.Fprintf(out, "  %s\n", formatter.ColumnHeader(col, counts[col]))
			}
			return nil
		},
	}
}
