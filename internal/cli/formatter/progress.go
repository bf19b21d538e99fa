package formatter

import (
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderUsage renders how much of a day's capacity is booked, like
// [██████░░░░]. Green below two thirds, yellow below full, red when full.
func RenderUsage(used, capacity, width int) string {
	if width < 2 {
		width = 2
	}
	pct := 0.0
	if capacity > 0 {
		pct = float64(used) / float64(capacity)
	}
	pct = min(max(pct, 0), 1)

	filled := int(pct * float64(width))
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct >= 1:
		style = StyleRed
	case pct >= 0.66:
		style = StyleYellow
	}
	return "[" + style.Render(bar) + "]"
}
