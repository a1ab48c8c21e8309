package keymap

import (
	"errors"
	"testing"

	"github.com/verte-zerg/mindsight/internal/catalog"
	"github.com/verte-zerg/mindsight/internal/selection"
)

func redBlue(t *testing.T) selection.Selection {
	t.Helper()
	sel, err := selection.FromNames(catalog.Colors, []string{"red", "blue"})
	if err != nil {
		t.Fatalf("selection: %v", err)
	}
	return sel
}

func TestBindingIsPositionalBijection(t *testing.T) {
	b, err := New(DefaultKeys, redBlue(t), DefaultSkipKey, DefaultQuitKey)
	if err != nil {
		t.Fatalf("new binding: %v", err)
	}
	left, ok := b.Lookup("f")
	if !ok || left.Name != "red" {
		t.Fatalf("expected f -> red, got %v %v", left.Name, ok)
	}
	right, ok := b.Lookup("J")
	if !ok || right.Name != "blue" {
		t.Fatalf("expected J -> blue, got %v %v", right.Name, ok)
	}
	if left.Name == right.Name {
		t.Fatalf("lookup is not one-to-one")
	}
	if _, ok := b.Lookup("k"); ok {
		t.Fatalf("expected unbound key to miss")
	}
}

func TestBindingRejectsCollisions(t *testing.T) {
	sel := redBlue(t)
	cases := []struct {
		name string
		keys [2]string
	}{
		{"same key", [2]string{"f", "F"}},
		{"empty key", [2]string{"", "j"}},
		{"skip key", [2]string{" ", "j"}},
		{"quit key", [2]string{"f", "esc"}},
	}
	for _, tc := range cases {
		if _, err := New(tc.keys, sel, DefaultSkipKey, DefaultQuitKey); !errors.Is(err, ErrInvalidBinding) {
			t.Fatalf("%s: expected ErrInvalidBinding, got %v", tc.name, err)
		}
	}
	dup := sel
	dup.Items[1] = dup.Items[0]
	if _, err := New(DefaultKeys, dup); !errors.Is(err, ErrInvalidBinding) {
		t.Fatalf("expected duplicate items to be rejected, got %v", err)
	}
}

func TestNormalizeAndDisplay(t *testing.T) {
	if NormalizeKey(" ") != "space" {
		t.Fatalf("space not normalized")
	}
	if NormalizeKey("Escape") != "esc" {
		t.Fatalf("escape not normalized")
	}
	if DisplayName("f") != "F" || DisplayName("space") != "Space" || DisplayName("esc") != "Esc" {
		t.Fatalf("unexpected display names")
	}
}
