// Package selection tracks the menu cursor and the two items picked for a session.
package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/mindsight/internal/catalog"
)

// PairSize is the number of items a session trains on.
const PairSize = 2

// ErrSelectionIncomplete is returned when confirming without exactly two items.
var ErrSelectionIncomplete = errors.New("exactly two items must be selected")

// Selection is a confirmed pair of distinct items from one category.
// Items keep the order in which they were picked.
type Selection struct {
	Category catalog.Category
	Items    [PairSize]catalog.Item
}

// Names returns the item names in pick order.
func (s Selection) Names() [PairSize]string {
	return [PairSize]string{s.Items[0].Name, s.Items[1].Name}
}

// FromNames builds a selection from item names, validating them against the catalog.
func FromNames(c catalog.Category, names []string) (Selection, error) {
	if len(names) != PairSize {
		return Selection{}, fmt.Errorf("%w: got %d", ErrSelectionIncomplete, len(names))
	}
	sel := Selection{Category: c}
	for i, name := range names {
		item, ok := catalog.Lookup(c, name)
		if !ok {
			return Selection{}, fmt.Errorf("unknown %s option %q", c, strings.TrimSpace(name))
		}
		sel.Items[i] = item
	}
	if sel.Items[0].Name == sel.Items[1].Name {
		return Selection{}, fmt.Errorf("items must differ, got %q twice", sel.Items[0].Name)
	}
	return sel, nil
}

// Cursor is a highlighted index that wraps around a fixed length.
type Cursor struct {
	index  int
	length int
}

// NewCursor returns a cursor at index 0 over length entries.
func NewCursor(length int) Cursor {
	return Cursor{length: length}
}

// Index returns the highlighted index.
func (c Cursor) Index() int {
	return c.index
}

// Move shifts the cursor by delta, wrapping cyclically.
func (c *Cursor) Move(delta int) {
	if c.length <= 0 {
		return
	}
	c.index = ((c.index+delta)%c.length + c.length) % c.length
}

// Selector drives the item menu for one category.
type Selector struct {
	category catalog.Category
	options  []catalog.Item
	cursor   Cursor
	picked   []int
}

// New returns a selector over the full catalog of a category.
func New(c catalog.Category) *Selector {
	options := catalog.Options(c)
	return &Selector{
		category: c,
		options:  options,
		cursor:   NewCursor(len(options)),
	}
}

// Category returns the category being selected from.
func (s *Selector) Category() catalog.Category {
	return s.category
}

// Options returns the catalog presented by the selector.
func (s *Selector) Options() []catalog.Item {
	return s.options
}

// Cursor returns the highlighted option index.
func (s *Selector) Cursor() int {
	return s.cursor.Index()
}

// Up moves the highlight to the previous option.
func (s *Selector) Up() {
	s.cursor.Move(-1)
}

// Down moves the highlight to the next option.
func (s *Selector) Down() {
	s.cursor.Move(1)
}

// Toggle selects the highlighted option, or deselects it when already picked.
// It reports whether the selection changed; adding a third item is a no-op.
func (s *Selector) Toggle() bool {
	if len(s.options) == 0 {
		return false
	}
	idx := s.cursor.Index()
	for i, p := range s.picked {
		if p == idx {
			s.picked = append(s.picked[:i], s.picked[i+1:]...)
			return true
		}
	}
	if len(s.picked) >= PairSize {
		return false
	}
	s.picked = append(s.picked, idx)
	return true
}

// IsSelected reports whether the option at idx is picked.
func (s *Selector) IsSelected(idx int) bool {
	for _, p := range s.picked {
		if p == idx {
			return true
		}
	}
	return false
}

// Selected returns the picked items in pick order.
func (s *Selector) Selected() []catalog.Item {
	out := make([]catalog.Item, 0, len(s.picked))
	for _, p := range s.picked {
		out = append(out, s.options[p])
	}
	return out
}

// Confirm returns the selection when exactly two items are picked.
func (s *Selector) Confirm() (Selection, error) {
	if len(s.picked) != PairSize {
		return Selection{}, fmt.Errorf("%w: %d selected", ErrSelectionIncomplete, len(s.picked))
	}
	return Selection{
		Category: s.category,
		Items:    [PairSize]catalog.Item{s.options[s.picked[0]], s.options[s.picked[1]]},
	}, nil
}
