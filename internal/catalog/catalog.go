// Package catalog defines the stimulus categories and their options.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a category name does not match any category.
var ErrUnknownCategory = errors.New("unknown category")

// Category is one of the stimulus families a session can train on.
type Category int

const (
	Colors Category = iota
	Shapes
	Letters
)

var categoryNames = map[Category]string{
	Colors:  "colors",
	Shapes:  "shapes",
	Letters: "letters",
}

// Categories returns all categories in menu order.
func Categories() []Category {
	return []Category{Colors, Shapes, Letters}
}

// String returns the lowercase category name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Title returns the capitalized category name.
func (c Category) Title() string {
	return titleCase(c.String())
}

// ParseCategory resolves a category from its name, ignoring case and surrounding space.
func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range Categories() {
		if categoryNames[c] == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// RGB is a 24-bit color.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Hex formats the color as #RRGGBB.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ShapeKind selects the outline drawn for a shape stimulus.
type ShapeKind int

const (
	Square ShapeKind = iota
	Rectangle
	Triangle
	Circle
	Star
)

// Item is a single selectable stimulus. Only the field matching the
// item's category is meaningful.
type Item struct {
	Name  string
	Color RGB
	Shape ShapeKind
	Glyph rune
}

// Label returns the display label of the item.
func (i Item) Label() string {
	return titleCase(i.Name)
}

var colorOptions = []Item{
	{Name: "white", Color: RGB{255, 255, 255}},
	{Name: "black", Color: RGB{0, 0, 0}},
	{Name: "red", Color: RGB{255, 0, 0}},
	{Name: "yellow", Color: RGB{255, 255, 0}},
	{Name: "blue", Color: RGB{0, 0, 255}},
	{Name: "green", Color: RGB{0, 255, 0}},
	{Name: "orange", Color: RGB{255, 165, 0}},
	{Name: "purple", Color: RGB{128, 0, 128}},
}

var shapeOptions = []Item{
	{Name: "square", Shape: Square},
	{Name: "rectangle", Shape: Rectangle},
	{Name: "triangle", Shape: Triangle},
	{Name: "circle", Shape: Circle},
	{Name: "star", Shape: Star},
}

var letterOptions = buildLetters()

func init() {
	if err := validateTables(Options); err != nil {
		panic(err)
	}
}

func validateTables(options func(Category) []Item) error {
	for _, c := range Categories() {
		if err := Validate(options(c)); err != nil {
			return fmt.Errorf("catalog %s: %w", c, err)
		}
	}
	return nil
}

func buildLetters() []Item {
	items := make([]Item, 0, 26)
	for r := 'A'; r <= 'Z'; r++ {
		items = append(items, Item{Name: string(r), Glyph: r})
	}
	return items
}

// Options returns a copy of the ordered option list for a category.
func Options(c Category) []Item {
	var src []Item
	switch c {
	case Colors:
		src = colorOptions
	case Shapes:
		src = shapeOptions
	case Letters:
		src = letterOptions
	default:
		return nil
	}
	out := make([]Item, len(src))
	copy(out, src)
	return out
}

// Lookup finds an option by name within a category. Matching ignores case.
func Lookup(c Category, name string) (Item, bool) {
	name = strings.TrimSpace(name)
	for _, item := range Options(c) {
		if strings.EqualFold(item.Name, name) {
			return item, true
		}
	}
	return Item{}, false
}

// Validate checks that an option list is non-empty and has unique names.
func Validate(items []Item) error {
	if len(items) == 0 {
		return fmt.Errorf("catalog is empty")
	}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		key := strings.ToLower(item.Name)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate option %q", item.Name)
		}
		seen[key] = struct{}{}
	}
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
