package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/alexanderramin/taskboard/internal/service"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Manage tasks",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.setup(cmd); err != nil {
				return err
			}
			return requireSession(cmd, app)
		},
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskEditCmd(app),
		newTaskMoveCmd(app),
		newTaskRemoveCmd(app),
		newTaskShowCmd(app),
		newTaskListCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var f taskFields
	var tags []string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a task",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.Title = args[0]
			}
			in := f.input()
			in.Tags = tags
			in.Column = parseColumn(f.Column)
			in.Priority = parsePriority(f.Priority)

			if f.Title == "" && app.interactive() {
				f.prefill(in)
				if err := taskForm("New task", &f).Run(); err != nil {
					return err
				}
				in = f.input()
			}

			task, err := app.Board.CreateTask(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task created ✓ %s %s\n", formatter.TruncID(task.ID), formatter.Bold(task.Title))
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.Description, "desc", "d", "", "Description")
	cmd.Flags().StringVarP(&f.Priority, "priority", "p", "", "Priority: High, Medium or Low (default Medium)")
	cmd.Flags().StringVarP(&f.Column, "column", "c", "", "Column: Todo, Doing or Done (default Todo)")
	cmd.Flags().StringVar(&f.DueDate, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag (repeatable or comma separated)")

	return cmd
}

func newTaskEditCmd(app *App) *cobra.Command {
	var f taskFields
	var tags []string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(app, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var patch domain.TaskPatch
			if flags.Changed("title") {
				patch.Title = &f.Title
			}
			if flags.Changed("desc") {
				patch.Description = &f.Description
			}
			if flags.Changed("priority") {
				p := parsePriority(f.Priority)
				patch.Priority = &p
			}
			if flags.Changed("column") {
				c := parseColumn(f.Column)
				patch.Column = &c
			}
			if flags.Changed("due") {
				patch.DueDate = &f.DueDate
			}
			if flags.Changed("tag") {
				patch.Tags = &tags
			}

			if patch == (domain.TaskPatch{}) {
				if !app.interactive() {
					return fmt.Errorf("nothing to update: pass at least one field flag")
				}
				current, err := app.Board.GetTask(id)
				if err != nil {
					return err
				}
				fields := taskFieldsFrom(current)
				if err := taskForm("Edit task", &fields).Run(); err != nil {
					return err
				}
				patch = fields.patch()
			}

			task, err := app.Board.UpdateTask(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task updated ✓ %s %s\n", formatter.TruncID(task.ID), formatter.Bold(task.Title))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.Title, "title", "", "Title")
	cmd.Flags().StringVarP(&f.Description, "desc", "d", "", "Description")
	cmd.Flags().StringVarP(&f.Priority, "priority", "p", "", "Priority: High, Medium or Low")
	cmd.Flags().StringVarP(&f.Column, "column", "c", "", "Column: Todo, Doing or Done")
	cmd.Flags().StringVar(&f.DueDate, "due", "", "Due date (YYYY-MM-DD); empty clears it")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Replace tags (repeatable or comma separated)")

	return cmd
}

func newTaskMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <column>",
		Short: "Move a task to another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(app, args[0])
			if err != nil {
				return err
			}
			task, moved, err := app.Board.MoveTask(cmd.Context(), id, parseColumn(args[1]))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !moved {
				fmt.Fprintf(out, "%s is already in %s\n", formatter.Bold(task.Title), task.Column)
				return nil
			}
			fmt.Fprintf(out, "Moved %s to %s\n", formatter.Bold(task.Title), formatter.ColumnStyle(task.Column).Render(string(task.Column)))
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			id, err := resolveTaskID(app, args[0])
			if errors.Is(err, domain.ErrNotFound) {
				fmt.Fprintln(out, formatter.Dim("No matching task; nothing deleted"))
				return nil
			}
			if err != nil {
				return err
			}
			deleted, err := app.Board.DeleteTask(cmd.Context(), id)
			if err != nil {
				return err
			}
			if deleted {
				fmt.Fprintln(out, "Task deleted")
			}
			return nil
		},
	}
}

func newTaskShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show every field of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTaskID(app, args[0])
			if err != nil {
				return err
			}
			task, err := app.Board.GetTask(id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTaskDetail(task, app.now()))
			return nil
		},
	}
}

// boardFilterFlags are the filters shared by "task list" and "board".
type boardFilterFlags struct {
	search   string
	priority string
	sortDue  bool
}

func (b *boardFilterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&b.search, "search", "s", "", "Only tasks whose title contains this text")
	cmd.Flags().StringVarP(&b.priority, "priority", "p", string(domain.PriorityAll), "Only tasks with this priority, or All")
	cmd.Flags().BoolVar(&b.sortDue, "sort-due", false, "Sort each column by due date, undated last")
}

func (b *boardFilterFlags) filter(col domain.Column) service.TaskFilter {
	return service.TaskFilter{
		Column:    col,
		Search:    b.search,
		Priority:  parsePriority(b.priority),
		SortByDue: b.sortDue,
	}
}

func newTaskListCmd(app *App) *cobra.Command {
	var filters boardFilterFlags
	var column string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			columns := domain.Columns
			if column != "" {
				col := parseColumn(column)
				if !col.Valid() {
					return fmt.Errorf("unknown column %q (want Todo, Doing or Done)", column)
				}
				columns = []domain.Column{col}
			}

			var tasks []domain.Task
			for _, col := range columns {
				tasks = append(tasks, app.Board.ListTasks(filters.filter(col))...)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskTable(tasks, app.now()))
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVarP(&column, "column", "c", "", "Only this column")

	return cmd
}
