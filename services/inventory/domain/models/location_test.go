package models

import (
	"errors"
	"testing"

	domain "github.com/ghuser/homestock/services/inventory/domain"
)

func TestParseLocation(t *testing.T) {
	t.Run("accepts all enum values", func(t *testing.T) {
		for _, s := range []string{"inventory", "grocery", "archived"} {
			loc, err := ParseLocation(s)
			if err != nil {
				t.Fatalf("ParseLocation(%q): unexpected error: %v", s, err)
			}
			if loc.String() != s {
				t.Fatalf("ParseLocation(%q): got %q", s, loc.String())
			}
		}
	})

	t.Run("rejects unknown value", func(t *testing.T) {
		_, err := ParseLocation("pantry")
		if !errors.Is(err, domain.ErrInvalidLocation) {
			t.Fatalf("expected ErrInvalidLocation, got %v", err)
		}
	})

	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseLocation("")
		if !errors.Is(err, domain.ErrInvalidLocation) {
			t.Fatalf("expected ErrInvalidLocation, got %v", err)
		}
	})

	t.Run("is case sensitive", func(t *testing.T) {
		_, err := ParseLocation("Inventory")
		if !errors.Is(err, domain.ErrInvalidLocation) {
			t.Fatalf("expected ErrInvalidLocation for mixed case, got %v", err)
		}
	})
}
