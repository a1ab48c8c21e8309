// Package keymap binds the two response keys to the selected items.
package keymap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/mindsight/internal/catalog"
	"github.com/verte-zerg/mindsight/internal/selection"
)

// Default key names, normalized with NormalizeKey.
const (
	DefaultSkipKey = "space"
	DefaultQuitKey = "esc"
)

// DefaultKeys are the response keys, left hand first.
var DefaultKeys = [selection.PairSize]string{"f", "j"}

// ErrInvalidBinding is returned when keys or items would break the one-to-one mapping.
var ErrInvalidBinding = errors.New("invalid key binding")

// Binding maps two response keys to the two selected items by position.
type Binding struct {
	keys  [selection.PairSize]string
	items [selection.PairSize]catalog.Item
}

// New assigns keys[0] to the first picked item and keys[1] to the second.
// Keys listed in reserved (skip, quit) may not be used as response keys.
func New(keys [selection.PairSize]string, sel selection.Selection, reserved ...string) (Binding, error) {
	var b Binding
	for i, k := range keys {
		k = NormalizeKey(k)
		if k == "" {
			return Binding{}, fmt.Errorf("%w: key %d is empty", ErrInvalidBinding, i+1)
		}
		for _, r := range reserved {
			if k == NormalizeKey(r) {
				return Binding{}, fmt.Errorf("%w: %q is reserved", ErrInvalidBinding, k)
			}
		}
		b.keys[i] = k
	}
	if b.keys[0] == b.keys[1] {
		return Binding{}, fmt.Errorf("%w: both items bound to %q", ErrInvalidBinding, b.keys[0])
	}
	if sel.Items[0].Name == sel.Items[1].Name {
		return Binding{}, fmt.Errorf("%w: both keys bound to %q", ErrInvalidBinding, sel.Items[0].Name)
	}
	b.items = sel.Items
	return b, nil
}

// Lookup returns the item bound to key.
func (b Binding) Lookup(key string) (catalog.Item, bool) {
	key = NormalizeKey(key)
	for i, k := range b.keys {
		if k == key {
			return b.items[i], true
		}
	}
	return catalog.Item{}, false
}

// Keys returns the bound keys in position order.
func (b Binding) Keys() [selection.PairSize]string {
	return b.keys
}

// Items returns the bound items in position order.
func (b Binding) Items() [selection.PairSize]catalog.Item {
	return b.items
}

// NormalizeKey maps a Bubble Tea key string to the canonical form used in
// bindings and config: lowercase, with the space bar spelled "space".
func NormalizeKey(key string) string {
	if key == " " {
		return "space"
	}
	key = strings.TrimSpace(key)
	if len([]rune(key)) == 1 {
		return strings.ToLower(key)
	}
	switch strings.ToLower(key) {
	case "escape":
		return "esc"
	case "return":
		return "enter"
	}
	return strings.ToLower(key)
}

// DisplayName renders a normalized key for on-screen labels.
func DisplayName(key string) string {
	key = NormalizeKey(key)
	switch key {
	case "space":
		return "Space"
	case "esc":
		return "Esc"
	case "enter":
		return "Enter"
	}
	if len([]rune(key)) == 1 {
		return strings.ToUpper(key)
	}
	return key
}
