package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	boardColumnWidth   = 34
	boardProgressWidth = 20
	cardInnerPadding   = 2
	emptyColumnMessage = "No tasks"
	emptyLogMessage    = "No activity yet."
	noMatchesMessage   = "No matching tasks."
)

// BoardColumn is one rendered column: its filtered tasks plus the unfiltered
// total shown in the header.
type BoardColumn struct {
	Column domain.Column
	Count  int
	Tasks  []domain.Task
}

// FormatBoard renders the three columns side by side under a progress header.
func FormatBoard(cols []BoardColumn, progress int, email string, now time.Time) string {
	rendered := make([]string, len(cols))
	for i, col := range cols {
		rendered[i] = FormatColumn(col, now, -1)
	}

	var b strings.Builder
	if email != "" {
		b.WriteString(Dim("Signed in as ") + Bold(email) + "\n")
	}
	b.WriteString(RenderProgress(progress, boardProgressWidth) + Dim(" done") + "\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n")
	return b.String()
}

// FormatColumn renders a column box. The card at index selected is
// highlighted; pass -1 for none.
func FormatColumn(col BoardColumn, now time.Time, selected int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Width(boardColumnWidth).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(ColumnHeader(col.Column, col.Count))
	b.WriteString("\n")
	if len(col.Tasks) == 0 {
		b.WriteString("\n" + Dim(emptyColumnMessage))
	}
	for i := range col.Tasks {
		b.WriteString("\n")
		b.WriteString(FormatCard(&col.Tasks[i], now, i == selected))
	}
	return style.Render(b.String())
}

// FormatCard renders a task as a compact card.
func FormatCard(t *domain.Task, now time.Time, selected bool) string {
	width := boardColumnWidth - cardInnerPadding*2
	border := lipgloss.NormalBorder()
	color := ColorDim
	if selected {
		border = lipgloss.ThickBorder()
		color = ColorHeader
	}
	style := lipgloss.NewStyle().Border(border).BorderForeground(color).Width(width)

	lines := []string{Bold(Truncate(t.Title, width)), PriorityBadge(t.Priority)}
	if t.Description != "" {
		lines = append(lines, StyleFg.Render(Truncate(t.Description, DescriptionPreviewLen)))
	}
	if tags := TagList(t.Tags); tags != "" {
		lines = append(lines, tags)
	}
	lines = append(lines, DueLabel(t, now)+"  "+TruncID(t.ID))
	return style.Render(strings.Join(lines, "\n"))
}

// FormatTaskTable lists tasks one per row.
func FormatTaskTable(tasks []domain.Task, now time.Time) string {
	if len(tasks) == 0 {
		return Dim(noMatchesMessage) + "\n"
	}
	headers := []string{"ID", "TITLE", "COLUMN", "PRIORITY", "DUE", "TAGS"}
	rows := make([][]string, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		rows = append(rows, []string{
			TruncID(t.ID),
			Bold(Truncate(t.Title, 40)),
			ColumnStyle(t.Column).Render(string(t.Column)),
			PriorityBadge(t.Priority),
			DueLabel(t, now),
			TagList(t.Tags),
		})
	}
	return RenderTable(headers, rows)
}

// FormatTaskDetail renders every field of a task in a box.
func FormatTaskDetail(t *domain.Task, now time.Time) string {
	desc := t.Description
	if desc == "" {
		desc = Dim("No description")
	}
	tags := TagList(t.Tags)
	if tags == "" {
		tags = Dim("none")
	}
	rows := [][]string{
		{Dim("ID"), t.ID},
		{Dim("Column"), ColumnStyle(t.Column).Render(string(t.Column))},
		{Dim("Priority"), PriorityBadge(t.Priority)},
		{Dim("Due"), DueLabel(t, now)},
		{Dim("Tags"), tags},
		{Dim("Created"), t.CreatedAt.In(now.Location()).Format("02 Jan 2006 15:04")},
	}
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s %s\n", lipgloss.NewStyle().Width(10).Render(r[0]), r[1])
	}
	b.WriteString("\n" + desc)
	return RenderBox(t.Title, b.String())
}

// FormatLog renders activity entries in the order given.
func FormatLog(entries []domain.LogEntry, now time.Time) string {
	if len(entries) == 0 {
		return Dim(emptyLogMessage) + "\n"
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s %s\n", LogIcon(e.Type), Bold(e.Title))
		fmt.Fprintf(&b, "  %s\n", StyleFg.Render(e.Detail))
		fmt.Fprintf(&b, "  %s\n", Dim(HumanTimestamp(e.TS, now)))
	}
	return b.String()
}
