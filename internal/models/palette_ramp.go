package models

import (
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// namedColors are reference points for describing palette colors.
var namedColors = map[string]string{
	"Black":     "#000000",
	"White":     "#FFFFFF",
	"Red":       "#FF0000",
	"Green":     "#008000",
	"Blue":      "#0000FF",
	"Yellow":    "#FFFF00",
	"Cyan":      "#00FFFF",
	"Magenta":   "#FF00FF",
	"Gray":      "#808080",
	"Silver":    "#C0C0C0",
	"Maroon":    "#800000",
	"Olive":     "#808000",
	"Lime":      "#00FF00",
	"Teal":      "#008080",
	"Navy":      "#000080",
	"Purple":    "#800080",
	"Orange":    "#FFA500",
	"Pink":      "#FFC0CB",
	"Brown":     "#A52A2A",
	"Gold":      "#FFD700",
	"Indigo":    "#4B0082",
	"Violet":    "#EE82EE",
	"Turquoise": "#40E0D0",
	"Lavender":  "#E6E6FA",
	"Coral":     "#FF7F50",
}

type ColorMatch struct {
	Name     string
	ColorHex string
	Distance float64
}

// Ramp returns Level1..Level5 blended from low to high in Lab space, both
// ends included.
func (p Palette) Ramp(low, high string) (Palette, error) {
	from, err := colorful.Hex(low)
	if err != nil {
		return p, fmt.Errorf("invalid ramp start %q: %w", low, err)
	}
	to, err := colorful.Hex(high)
	if err != nil {
		return p, fmt.Errorf("invalid ramp end %q: %w", high, err)
	}

	levels := make([]string, 5)
	for i := range levels {
		levels[i] = from.BlendLab(to, float64(i)/4).Clamped().Hex()
	}
	p.Level1, p.Level2, p.Level3, p.Level4, p.Level5 = levels[0], levels[1], levels[2], levels[3], levels[4]
	return p, nil
}

// ClosestNamedColors lists the limit nearest named colors to hex by
// perceptual distance.
func ClosestNamedColors(hex string, limit int) ([]ColorMatch, error) {
	input, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", hex, err)
	}

	matches := make([]ColorMatch, 0, len(namedColors))
	for name, ref := range namedColors {
		reference, _ := colorful.Hex(ref)
		matches = append(matches, ColorMatch{Name: name, ColorHex: ref, Distance: input.DistanceLab(reference)})
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance == matches[j].Distance {
			return matches[i].Name < matches[j].Name
		}
		return matches[i].Distance < matches[j].Distance
	})

	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, nil
}
