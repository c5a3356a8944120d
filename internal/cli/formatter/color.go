package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PriorityStyle returns the style used for a priority badge.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityMedium:
		return StyleYellow
	case domain.PriorityLow:
		return StyleGreen
	default:
		return StyleDim
	}
}

// PriorityBadge renders a priority as a colored dot and label, e.g. "● High".
func PriorityBadge(p domain.Priority) string {
	return PriorityStyle(p).Render("● " + string(p))
}

// ColumnStyle colors the three board columns.
func ColumnStyle(c domain.Column) lipgloss.Style {
	switch c {
	case domain.ColumnTodo:
		return StyleBlue.Bold(true)
	case domain.ColumnDoing:
		return StyleYellow.Bold(true)
	case domain.ColumnDone:
		return StyleGreen.Bold(true)
	default:
		return StyleBold
	}
}

// ColumnHeader renders "TODO (3)" in the column's color.
func ColumnHeader(c domain.Column, count int) string {
	return ColumnStyle(c).Render(fmt.Sprintf("%s (%d)", strings.ToUpper(string(c)), count))
}

var logIcons = map[domain.LogType]string{
	domain.LogCreated: "✦",
	domain.LogEdited:  "✎",
	domain.LogMoved:   "⇄",
	domain.LogDeleted: "✕",
}

// LogIcon returns the styled glyph for an activity entry type.
func LogIcon(t domain.LogType) string {
	icon, ok := logIcons[t]
	if !ok {
		return Dim("·")
	}
	switch t {
	case domain.LogCreated:
		return StyleGreen.Render(icon)
	case domain.LogDeleted:
		return StyleRed.Render(icon)
	case domain.LogMoved:
		return StyleBlue.Render(icon)
	default:
		return StylePurple.Render(icon)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
