package render

import (
	"math"
	"unicode"
)

const (
	glyphCols = 5
	glyphRows = 7
)

var glyphs = map[rune][glyphRows]string{
	'A': {".###.", "#...#", "#...#", "#####", "#...#", "#...#", "#...#"},
	'B': {"####.", "#...#", "#...#", "####.", "#...#", "#...#", "####."},
	'C': {".###.", "#...#", "#....", "#....", "#....", "#...#", ".###."},
	'D': {"####.", "#...#", "#...#", "#...#", "#...#", "#...#", "####."},
	'E': {"#####", "#....", "#....", "####.", "#....", "#....", "#####"},
	'F': {"#####", "#....", "#....", "####.", "#....", "#....", "#...."},
	'G': {".###.", "#...#", "#....", "#.###", "#...#", "#...#", ".####"},
	'H': {"#...#", "#...#", "#...#", "#####", "#...#", "#...#", "#...#"},
	'I': {".###.", "..#..", "..#..", "..#..", "..#..", "..#..", ".###."},
	'J': {"..###", "...#.", "...#.", "...#.", "...#.", "#..#.", ".##.."},
	'K': {"#...#", "#..#.", "#.#..", "##...", "#.#..", "#..#.", "#...#"},
	'L': {"#....", "#....", "#....", "#....", "#....", "#....", "#####"},
	'M': {"#...#", "##.##", "#.#.#", "#.#.#", "#...#", "#...#", "#...#"},
	'N': {"#...#", "#...#", "##..#", "#.#.#", "#..##", "#...#", "#...#"},
	'O': {".###.", "#...#", "#...#", "#...#", "#...#", "#...#", ".###."},
	'P': {"####.", "#...#", "#...#", "####.", "#....", "#....", "#...."},
	'Q': {".###.", "#...#", "#...#", "#...#", "#.#.#", "#..#.", ".##.#"},
	'R': {"####.", "#...#", "#...#", "####.", "#.#..", "#..#.", "#...#"},
	'S': {".####", "#....", "#....", ".###.", "....#", "....#", "####."},
	'T': {"#####", "..#..", "..#..", "..#..", "..#..", "..#..", "..#.."},
	'U': {"#...#", "#...#", "#...#", "#...#", "#...#", "#...#", ".###."},
	'V': {"#...#", "#...#", "#...#", "#...#", "#...#", ".#.#.", "..#.."},
	'W': {"#...#", "#...#", "#...#", "#.#.#", "#.#.#", "#.#.#", ".#.#."},
	'X': {"#...#", "#...#", ".#.#.", "..#..", ".#.#.", "#...#", "#...#"},
	'Y': {"#...#", "#...#", ".#.#.", "..#..", "..#..", "..#..", "..#.."},
	'Z': {"#####", "....#", "...#.", "..#..", ".#...", "#....", "#####"},
}

// HasGlyph reports whether r can be drawn as a block letter.
func HasGlyph(r rune) bool {
	_, ok := glyphs[unicode.ToUpper(r)]
	return ok
}

// DrawGlyph scales a block letter to fill the stimulus box, centered on the canvas.
func DrawGlyph(c *Canvas, r rune) {
	rows, ok := glyphs[unicode.ToUpper(r)]
	if !ok {
		return
	}
	size := StimulusSize(c.Width(), c.Height())
	if size <= 0 {
		return
	}
	boxH := size
	boxW := size * glyphCols / glyphRows
	c.Fill(func(x, y float64) bool {
		gx := (x + boxW/2) / boxW * glyphCols
		gy := (y + boxH/2) / boxH * glyphRows
		if gx < 0 || gy < 0 {
			return false
		}
		col := int(math.Floor(gx))
		row := int(math.Floor(gy))
		if col >= glyphCols || row >= glyphRows {
			return false
		}
		return rows[row][col] == '#'
	})
}
