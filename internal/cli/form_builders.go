package cli

import (
	"strings"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/charmbracelet/huh"
)

// loginFields backs the sign-in form.
type loginFields struct {
	Email    string
	Password string
	Remember bool
}

func loginForm(f *loginFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Sign in").
				Description("Demo account: intern@demo.com / intern123"),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&f.Email).
				Validate(validateRequired("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&f.Password).
				Validate(validateRequired("password")),
			huh.NewConfirm().
				Title("Remember me").
				Value(&f.Remember),
		),
	).WithTheme(taskboardHuhTheme()).WithShowHelp(false)
}

// taskFields backs the create/edit task form. All values are strings so they
// bind directly to huh inputs.
type taskFields struct {
	Title       string
	Description string
	Priority    string
	Column      string
	DueDate     string
	Tags        string
}

func taskFieldsFrom(t *domain.Task) taskFields {
	return taskFields{
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Column:      string(t.Column),
		DueDate:     t.DueDate,
		Tags:        strings.Join(t.Tags, ", "),
	}
}

// prefill copies values given as flags into the form, so running the form
// keeps them.
func (f *taskFields) prefill(in domain.TaskInput) {
	f.Description = in.Description
	f.Column = string(in.Column)
	f.Priority = string(in.Priority)
	f.DueDate = in.DueDate
	f.Tags = strings.Join(in.Tags, ", ")
}

func (f taskFields) input() domain.TaskInput {
	return domain.TaskInput{
		Title:       f.Title,
		Description: f.Description,
		Priority:    domain.Priority(f.Priority),
		Column:      domain.Column(f.Column),
		DueDate:     f.DueDate,
		Tags:        splitTags(f.Tags),
	}
}

func (f taskFields) patch() domain.TaskPatch {
	prio := domain.Priority(f.Priority)
	col := domain.Column(f.Column)
	tags := splitTags(f.Tags)
	return domain.TaskPatch{
		Title:       &f.Title,
		Description: &f.Description,
		Priority:    &prio,
		Column:      &col,
		DueDate:     &f.DueDate,
		Tags:        &tags,
	}
}

func taskForm(heading string, f *taskFields) *huh.Form {
	if f.Priority == "" {
		f.Priority = string(domain.PriorityMedium)
	}
	if f.Column == "" {
		f.Column = string(domain.ColumnTodo)
	}
	priorities := make([]huh.Option[string], 0, len(domain.Priorities))
	for _, p := range domain.Priorities {
		priorities = append(priorities, huh.NewOption(string(p), string(p)))
	}
	columns := make([]huh.Option[string], 0, len(domain.Columns))
	for _, c := range domain.Columns {
		columns = append(columns, huh.NewOption(string(c), string(c)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(heading).
				Placeholder("Task title").
				Value(&f.Title).
				Validate(validateRequired("title")),
			huh.NewText().
				Title("Description").
				Value(&f.Description),
			huh.NewSelect[string]().
				Title("Priority").
				Options(priorities...).
				Value(&f.Priority),
			huh.NewSelect[string]().
				Title("Column").
				Options(columns...).
				Value(&f.Column),
			huh.NewInput().
				Title("Due date (YYYY-MM-DD, blank for none)").
				Placeholder("2025-06-30").
				Value(&f.DueDate).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Tags (comma separated)").
				Value(&f.Tags),
		),
	).WithTheme(taskboardHuhTheme()).WithShowHelp(false)
}
