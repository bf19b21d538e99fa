package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom describes t relative to now in whole calendar days.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0:
		return fmt.Sprintf("In %dw", days/7)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	default:
		return fmt.Sprintf("%dw ago", -days/7)
	}
}

// DeadlineStyled renders a deadline date with urgency coloring: overdue and
// the next two days red, within a week yellow.
func DeadlineStyled(deadline, now time.Time) string {
	date := deadline.Format("2006-01-02")
	rel := Dim("(" + RelativeDateFrom(deadline, now) + ")")
	days := int(math.Round(deadline.Sub(now).Hours() / 24))
	switch {
	case days <= 2:
		date = StyleRed.Render(date)
	case days <= 7:
		date = StyleYellow.Render(date)
	}
	return date + " " + rel
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}
