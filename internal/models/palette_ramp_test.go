package models

import (
	"strings"
	"testing"
)

func TestPaletteRamp(t *testing.T) {
	p, err := DefaultPalette().Ramp("#000000", "#ffffff")
	if err != nil {
		t.Fatalf("Ramp: %v", err)
	}
	if p.Level1 != "#000000" || p.Level5 != "#ffffff" {
		t.Fatalf("ramp ends = %s..%s", p.Level1, p.Level5)
	}
	if err := p.Validate(); err != nil {
		t.Fatalf("ramped palette invalid: %v", err)
	}

	prev := -1.0
	for level := 1; level <= 5; level++ {
		l, err := relativeLuminance(strings.ToLower(p.Level(level)))
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		if l <= prev {
			t.Fatalf("level %d luminance %f not above %f", level, l, prev)
		}
		prev = l
	}
	if p.Empty != DefaultPalette().Empty {
		t.Fatal("Ramp changed non-level colors")
	}
}

func TestPaletteRampInvalid(t *testing.T) {
	if _, err := DefaultPalette().Ramp("nope", "#ffffff"); err == nil {
		t.Fatal("expected error for invalid start")
	}
	if _, err := DefaultPalette().Ramp("#000000", "#zzzzzz"); err == nil {
		t.Fatal("expected error for invalid end")
	}
}

func TestClosestNamedColors(t *testing.T) {
	matches, err := ClosestNamedColors("#fe0101", 3)
	if err != nil {
		t.Fatalf("ClosestNamedColors: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("len = %d, want 3", len(matches))
	}
	if matches[0].Name != "Red" {
		t.Fatalf("closest = %s, want Red", matches[0].Name)
	}
	if matches[0].Distance > matches[1].Distance {
		t.Fatal("matches not sorted by distance")
	}
}
