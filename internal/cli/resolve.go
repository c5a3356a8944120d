package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/taskboard/internal/domain"
)

// resolveTaskID accepts a full task id or a unique prefix of one, such as
// the 8 characters shown in listings.
func resolveTaskID(app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}

	tasks := app.Board.Tasks()
	var matches []string
	for _, t := range tasks {
		if t.ID == input {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task %q: %w", input, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// parseColumn matches a column name case-insensitively. Unknown names are
// passed through for the board to reject.
func parseColumn(s string) domain.Column {
	s = strings.TrimSpace(s)
	for _, c := range domain.Columns {
		if strings.EqualFold(string(c), s) {
			return c
		}
	}
	return domain.Column(s)
}

// parsePriority matches a priority (or "all") case-insensitively.
func parsePriority(s string) domain.Priority {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, string(domain.PriorityAll)) {
		return domain.PriorityAll
	}
	for _, p := range domain.Priorities {
		if strings.EqualFold(string(p), s) {
			return p
		}
	}
	return domain.Priority(s)
}
