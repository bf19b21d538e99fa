package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
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

// PriorityStyle returns the style used for a task or event of priority p.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch domain.ParsePriority(string(p)) {
	case domain.PriorityHigh:
		return StyleRed
	case domain.PriorityLow:
		return StyleBlue
	default:
		return StyleYellow
	}
}

// PriorityBadge renders a colored priority label such as "● HIGH".
func PriorityBadge(p domain.Priority) string {
	norm := domain.ParsePriority(string(p))
	return PriorityStyle(norm).Render("● " + strings.ToUpper(string(norm)))
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
