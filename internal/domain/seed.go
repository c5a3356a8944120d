package domain

import "time"

var seedTasks = []TaskInput{
	{
		Column:      ColumnTodo,
		Title:       "Design system setup",
		Description: "Define tokens, colors, spacing scale",
		Priority:    PriorityHigh,
		DueDate:     "2025-03-01",
		Tags:        []string{"design", "setup"},
	},
	{
		Column:      ColumnDoing,
		Title:       "Authentication flow",
		Description: "Login, logout, remember me",
		Priority:    PriorityHigh,
		DueDate:     "2025-02-20",
		Tags:        []string{"auth"},
	},
	{
		Column:      ColumnDone,
		Title:       "Project scaffolding",
		Description: "Init repo, configure tooling",
		Priority:    PriorityLow,
		Tags:        []string{"infra"},
	},
}

// DefaultTasks returns a fresh copy of the seed board. Every call assigns new
// ids and creation times.
func DefaultTasks(now time.Time) []Task {
	out := make([]Task, 0, len(seedTasks))
	for _, in := range seedTasks {
		t, err := NewTask(in, now)
		if err != nil {
			panic("domain: invalid seed task: " + err.Error())
		}
		out = append(out, *t)
	}
	return out
}
