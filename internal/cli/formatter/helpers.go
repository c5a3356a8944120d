package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// DescriptionPreviewLen is how much of a description a card shows.
const DescriptionPreviewLen = 90

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title == "" {
		return boxStyle.Render(content)
	}
	return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// DueLabel formats a task's due date as "01 Mar 2025", prefixed with a
// warning sign and colored red when overdue.
func DueLabel(t *domain.Task, now time.Time) string {
	due, ok := t.Due(now.Location())
	if !ok {
		return Dim("No due date")
	}
	text := due.Format("02 Jan 2006")
	if t.IsOverdue(now) {
		return StyleRed.Render("⚠ " + text)
	}
	return StyleFg.Render(text)
}

// TagList renders tags as "#a #b".
func TagList(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = "#" + tag
	}
	return StylePurple.Render(strings.Join(parts, " "))
}

// Truncate shortens s to n runes, ending with an ellipsis when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HumanTimestamp renders t relative to now for recent events and as a
// local date-time otherwise.
func HumanTimestamp(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.In(now.Location()).Format("02 Jan 2006 15:04")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.In(now.Location()).Format("02 Jan 2006 15:04")
	}
}
