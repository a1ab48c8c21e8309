package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// styledCell is a menu entry whose display width is measured before styling.
type styledCell struct {
	s     string
	width int
}

func newStyledCell(text string, style lipgloss.Style) styledCell {
	return styledCell{
		s:     style.Render(text),
		width: runewidth.StringWidth(text),
	}
}

// renderColumns lays cells out column-major in cols columns, padding each
// column to its widest cell.
func renderColumns(cells []styledCell, cols, gap int) string {
	if len(cells) == 0 {
		return ""
	}
	if cols < 1 {
		cols = 1
	}
	rows := (len(cells) + cols - 1) / cols
	widths := make([]int, cols)
	for i, c := range cells {
		col := i / rows
		if c.width > widths[col] {
			widths[col] = c.width
		}
	}
	lines := make([]string, rows)
	for row := 0; row < rows; row++ {
		var b strings.Builder
		for col := 0; col < cols; col++ {
			idx := col*rows + row
			if idx >= len(cells) {
				break
			}
			if col > 0 {
				b.WriteString(strings.Repeat(" ", gap))
			}
			c := cells[idx]
			b.WriteString(c.s)
			if next := (col+1)*rows + row; next < len(cells) {
				b.WriteString(strings.Repeat(" ", widths[col]-c.width))
			}
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
