package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
	"github.com/alexanderramin/taskboard/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// taskboardHuhTheme returns a huh theme matching the formatter palette.
func taskboardHuhTheme() *huh.Theme {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	t := huh.ThemeBase()

	focused := &t.Focused
	focused.Title = fg(formatter.ColorHeader).Bold(true)
	focused.Description = fg(formatter.ColorDim)
	focused.ErrorMessage = fg(formatter.ColorRed)
	focused.SelectSelector = fg(formatter.ColorHeader)
	focused.SelectedOption = fg(formatter.ColorGreen)
	focused.UnselectedOption = fg(formatter.ColorFg)
	focused.FocusedButton = fg(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	focused.BlurredButton = fg(formatter.ColorDim).Padding(0, 1)
	focused.TextInput.Cursor = fg(formatter.ColorHeader)
	focused.TextInput.Prompt = fg(formatter.ColorHeader)
	focused.TextInput.Text = fg(formatter.ColorFg)
	focused.TextInput.Placeholder = fg(formatter.ColorDim)

	// Blurred fields are dimmed throughout.
	dim := fg(formatter.ColorDim)
	t.Blurred.Title = dim
	t.Blurred.SelectSelector = dim
	t.Blurred.SelectedOption = dim
	t.Blurred.UnselectedOption = dim
	t.Blurred.TextInput.Prompt = dim
	t.Blurred.TextInput.Text = dim

	return t
}

// validateRequired rejects blank input.
func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title, description string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(taskboardHuhTheme()).WithShowHelp(false)
}

// splitTags parses a comma or space separated tag list.
func splitTags(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' '
	})
}
