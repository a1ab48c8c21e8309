package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/mindsight/internal/catalog"
)

const (
	inkRune   = '█'
	paperRune = ' '
)

var (
	paperColor = lipgloss.Color("#FFFFFF")
	inkColor   = lipgloss.Color("#000000")
	inkStyle   = lipgloss.NewStyle().Foreground(inkColor).Background(paperColor)
)

// Renderer draws a stimulus filling a width x height cell area.
type Renderer interface {
	RenderStimulus(item catalog.Item, width, height int) string
}

// ForCategory returns the renderer for a category's stimuli.
func ForCategory(c catalog.Category) Renderer {
	switch c {
	case catalog.Colors:
		return colorRenderer{}
	case catalog.Shapes:
		return shapeRenderer{}
	case catalog.Letters:
		return letterRenderer{}
	default:
		return labelRenderer{}
	}
}

type colorRenderer struct{}

// RenderStimulus floods the whole area with the item's color.
func (colorRenderer) RenderStimulus(item catalog.Item, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	style := lipgloss.NewStyle().Background(lipgloss.Color(item.Color.Hex()))
	line := style.Render(strings.Repeat(" ", width))
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

type shapeRenderer struct{}

// RenderStimulus draws the shape in black on a white field.
func (shapeRenderer) RenderStimulus(item catalog.Item, width, height int) string {
	c := NewCanvas(width, height)
	DrawShape(c, item.Shape)
	return inkLines(c)
}

type letterRenderer struct{}

// RenderStimulus draws the letter as a large block glyph in black on white.
func (letterRenderer) RenderStimulus(item catalog.Item, width, height int) string {
	c := NewCanvas(width, height)
	DrawGlyph(c, item.Glyph)
	return inkLines(c)
}

type labelRenderer struct{}

func (labelRenderer) RenderStimulus(item catalog.Item, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, item.Label())
}

func inkLines(c *Canvas) string {
	lines := c.Lines(inkRune, paperRune)
	for i, line := range lines {
		lines[i] = inkStyle.Render(line)
	}
	return strings.Join(lines, "\n")
}

// Swatch returns a short colored block for menus. Non-color items yield "".
func Swatch(c catalog.Category, item catalog.Item) string {
	if c != catalog.Colors {
		return ""
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(item.Color.Hex())).Render("██")
}
