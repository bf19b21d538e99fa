package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/cli/formatter"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
)

// plannerHuhTheme matches huh forms to the formatter palette.
func plannerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// validatePositiveInt accepts empty or a positive integer.
func validatePositiveInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

func validatePriority(s string) error {
	if s == "" || domain.ValidPriorities[strings.ToLower(strings.TrimSpace(s))] {
		return nil
	}
	return fmt.Errorf("priority must be high, medium or low")
}
