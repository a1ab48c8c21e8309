package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func plainCells(texts ...string) []styledCell {
	cells := make([]styledCell, len(texts))
	for i, text := range texts {
		cells[i] = newStyledCell(text, lipgloss.NewStyle())
	}
	return cells
}

func TestRenderColumnsColumnMajor(t *testing.T) {
	out := renderColumns(plainCells("a", "bb", "c", "d", "e"), 3, 1)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d: %q", len(lines), out)
	}
	if lines[0] != "a  c e" {
		t.Fatalf("unexpected first row %q", lines[0])
	}
	if lines[1] != "bb d" {
		t.Fatalf("unexpected second row %q", lines[1])
	}
}

func TestRenderColumnsSingleColumn(t *testing.T) {
	out := renderColumns(plainCells("x", "y"), 1, 2)
	if out != "x\ny" {
		t.Fatalf("unexpected single column output %q", out)
	}
	if renderColumns(nil, 3, 1) != "" {
		t.Fatalf("expected empty output for no cells")
	}
}

func TestStyledCellWidthIgnoresStyling(t *testing.T) {
	cell := newStyledCell("[X] Red", cursorStyle)
	if cell.width != 7 {
		t.Fatalf("expected width 7, got %d", cell.width)
	}
}

func TestFitLinesPadsAndClips(t *testing.T) {
	out := fitLines("ab\ncd\nef", 4, 2)
	if out != "ab  \ncd  " {
		t.Fatalf("unexpected fit output %q", out)
	}
	out = fitLines("x", 2, 3)
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected padding rows, got %q", out)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("abcdefgh", 6); got != "abc..." {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncateLine("abc", 6); got != "abc" {
		t.Fatalf("expected untouched line, got %q", got)
	}
	if got := truncateLine("abcdef", 2); got != "ab" {
		t.Fatalf("unexpected short truncation %q", got)
	}
}
