// Package render rasterizes stimuli into terminal cells.
package render

import "strings"

// CellAspect is the height of a terminal cell in units of its width.
const CellAspect = 2.0

// Canvas is a grid of on/off terminal cells.
type Canvas struct {
	width  int
	height int
	cells  []bool
}

// NewCanvas returns a blank canvas. Non-positive sizes yield an empty canvas.
func NewCanvas(width, height int) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{width: width, height: height, cells: make([]bool, width*height)}
}

// Width returns the number of columns.
func (c *Canvas) Width() int { return c.width }

// Height returns the number of rows.
func (c *Canvas) Height() int { return c.height }

// Set marks a cell; out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = true
}

// At reports whether a cell is marked.
func (c *Canvas) At(x, y int) bool {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return false
	}
	return c.cells[y*c.width+x]
}

// Count returns the number of marked cells.
func (c *Canvas) Count() int {
	n := 0
	for _, on := range c.cells {
		if on {
			n++
		}
	}
	return n
}

// Fill marks every cell whose center satisfies inside. Coordinates passed
// to inside are relative to the canvas center and measured in cell widths,
// so a circle test produces a round shape on screen.
func (c *Canvas) Fill(inside func(x, y float64) bool) {
	cx := float64(c.width) / 2
	cy := float64(c.height) * CellAspect / 2
	for row := 0; row < c.height; row++ {
		py := (float64(row)+0.5)*CellAspect - cy
		for col := 0; col < c.width; col++ {
			px := float64(col) + 0.5 - cx
			if inside(px, py) {
				c.cells[row*c.width+col] = true
			}
		}
	}
}

// Lines renders the canvas using on for marked cells and off otherwise.
func (c *Canvas) Lines(on, off rune) []string {
	lines := make([]string, c.height)
	var b strings.Builder
	for row := 0; row < c.height; row++ {
		b.Reset()
		for col := 0; col < c.width; col++ {
			if c.cells[row*c.width+col] {
				b.WriteRune(on)
			} else {
				b.WriteRune(off)
			}
		}
		lines[row] = b.String()
	}
	return lines
}
