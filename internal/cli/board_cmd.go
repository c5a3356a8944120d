package cli

import (
	"fmt"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	var filters boardFilterFlags
	var static bool

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the board (interactive on a terminal)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(cmd, app); err != nil {
				return err
			}

			if app.interactive() && !static {
				p := tea.NewProgram(newBoardModel(cmd.Context(), app, filters), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
				_, err := p.Run()
				return err
			}

			counts := app.Board.ColumnCounts()
			cols := make([]formatter.BoardColumn, 0, len(domain.Columns))
			for _, col := range domain.Columns {
				cols = append(cols, formatter.BoardColumn{
					Column: col,
					Count:  counts[col],
					Tasks:  app.Board.ListTasks(filters.filter(col)),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBoard(cols, app.Board.Progress(), app.Auth.CurrentEmail(cmd.Context()), app.now()))
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().BoolVar(&static, "static", false, "Print the board instead of opening the interactive view")

	return cmd
}
