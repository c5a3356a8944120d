package service

import (
	"slices"
	"strings"

	"github.com/alexanderramin/taskboard/internal/domain"
)

// TaskFilter selects the tasks shown in one column.
type TaskFilter struct {
	Column domain.Column
	// Search matches titles case-insensitively; empty matches everything.
	Search string
	// Priority is a priority or domain.PriorityAll. Empty means all.
	Priority  domain.Priority
	SortByDue bool
}

func (f TaskFilter) matches(t *domain.Task, needle string) bool {
	if t.Column != f.Column {
		return false
	}
	if needle != "" && !strings.Contains(strings.ToLower(t.Title), needle) {
		return false
	}
	if f.Priority != "" && f.Priority != domain.PriorityAll && t.Priority != f.Priority {
		return false
	}
	return true
}

// filterTasks returns copies of the matching tasks in board order, optionally
// sorted by due date.
func filterTasks(tasks []domain.Task, f TaskFilter) []domain.Task {
	needle := strings.ToLower(f.Search)
	out := make([]domain.Task, 0)
	for i := range tasks {
		if f.matches(&tasks[i], needle) {
			out = append(out, *tasks[i].Clone())
		}
	}
	if f.SortByDue {
		sortByDueDate(out)
	}
	return out
}

// sortByDueDate orders dated tasks ascending and places undated tasks last.
// The sort is stable. Due dates are validated YYYY-MM-DD strings, so string
// order is date order.
func sortByDueDate(tasks []domain.Task) {
	slices.SortStableFunc(tasks, func(a, b domain.Task) int {
		switch {
		case a.DueDate == "" && b.DueDate == "":
			return 0
		case a.DueDate == "":
			return 1
		case b.DueDate == "":
			return -1
		}
		return strings.Compare(a.DueDate, b.DueDate)
	})
}

// progressPct is done/total as a percentage rounded half up; 0 for an empty
// board.
func progressPct(done, total int) int {
	if total == 0 {
		return 0
	}
	return (done*100 + total/2) / total
}

func indexOfTask(tasks []domain.Task, id string) int {
	return slices.IndexFunc(tasks, func(t domain.Task) bool { return t.ID == id })
}
