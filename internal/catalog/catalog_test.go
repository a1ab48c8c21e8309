package catalog

import (
	"errors"
	"strings"
	"testing"
)

func TestCatalogsAreValid(t *testing.T) {
	for _, c := range Categories() {
		if err := Validate(Options(c)); err != nil {
			t.Fatalf("%s catalog invalid: %v", c, err)
		}
	}
	if got := len(Options(Letters)); got != 26 {
		t.Fatalf("expected 26 letters, got %d", got)
	}
}

func TestValidateRejectsDuplicatesAndEmpty(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Fatalf("expected empty catalog to be rejected")
	}
	dup := []Item{{Name: "red"}, {Name: "Red"}}
	if err := Validate(dup); err == nil {
		t.Fatalf("expected duplicate names to be rejected")
	}
}

func TestValidateTablesNamesBrokenCategory(t *testing.T) {
	if err := validateTables(Options); err != nil {
		t.Fatalf("expected built-in tables to pass, got %v", err)
	}
	broken := func(c Category) []Item {
		if c == Shapes {
			return []Item{{Name: "star"}, {Name: "star"}}
		}
		return Options(c)
	}
	err := validateTables(broken)
	if err == nil || !strings.Contains(err.Error(), "catalog shapes") {
		t.Fatalf("expected shapes table to be rejected, got %v", err)
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("  Shapes ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c != Shapes {
		t.Fatalf("expected shapes, got %s", c)
	}
	if _, err := ParseCategory("sounds"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestLookupAndLabel(t *testing.T) {
	item, ok := Lookup(Colors, "ORANGE")
	if !ok {
		t.Fatalf("expected orange to be found")
	}
	if item.Color.Hex() != "#FFA500" {
		t.Fatalf("unexpected hex: %s", item.Color.Hex())
	}
	if item.Label() != "Orange" {
		t.Fatalf("unexpected label: %s", item.Label())
	}
	if _, ok := Lookup(Shapes, "hexagon"); ok {
		t.Fatalf("expected hexagon to be missing")
	}
}

func TestOptionsReturnsCopy(t *testing.T) {
	opts := Options(Shapes)
	opts[0].Name = "blob"
	if Options(Shapes)[0].Name != "square" {
		t.Fatalf("catalog was mutated through returned slice")
	}
}
