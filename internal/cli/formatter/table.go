package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const tableGap = 2

// RenderTable lays out the backlog-style tables: a styled header, a dim rule
// sized to each column, then the rows. Short rows are padded with blanks and
// extra cells are dropped. Widths count visible runes, so pre-styled cells
// (priority badges, deadlines) still line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	widths := columnWidths(headers, rows)

	var b strings.Builder

	styled := make([]string, len(headers))
	for i, h := range headers {
		styled[i] = StyleHeader.Render(h)
	}
	writeTableRow(&b, styled, widths)

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	writeTableRow(&b, rule, widths)

	for _, row := range rows {
		writeTableRow(&b, row, widths)
	}
	return b.String()
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

// writeTableRow pads every cell but the last to its column width plus the
// gap, then ends the line.
func writeTableRow(b *strings.Builder, cells []string, widths []int) {
	last := len(widths) - 1
	for i := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString(cell)
		if i < last {
			pad := max(widths[i]-lipgloss.Width(cell), 0)
			b.WriteString(strings.Repeat(" ", pad+tableGap))
		}
	}
	b.WriteByte('\n')
}
