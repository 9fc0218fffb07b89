// internal/models/palette.go
package models

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const darkTextColor = "#000000"
const lightTextColor = "#FFFFFF"

const (
	defaultBackground = "#09090a"
	defaultEmpty      = "#18181b"
	defaultFiller     = "#27272a"
	defaultLevel1     = "#4c1d95"
	defaultLevel2     = "#5b21b6"
	defaultLevel3     = "#6d28d9"
	defaultLevel4     = "#7c3aed"
	defaultLevel5     = "#8b5cf6"
	defaultChecked    = "#22c55e"
	defaultToday      = "#fafafa"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

// Palette holds the heat-map colors. Levels index 1..5 match summary
// heat levels; level 0 uses Empty.
type Palette struct {
	Background string `yaml:"background" json:"background"`
	Empty      string `yaml:"empty" json:"empty"`
	Filler     string `yaml:"filler" json:"filler"`
	Level1     string `yaml:"level1" json:"level1"`
	Level2     string `yaml:"level2" json:"level2"`
	Level3     string `yaml:"level3" json:"level3"`
	Level4     string `yaml:"level4" json:"level4"`
	Level5     string `yaml:"level5" json:"level5"`
	Checked    string `yaml:"checked" json:"checked"`
	Today      string `yaml:"today" json:"today"`
}

func DefaultPalette() Palette {
	return Palette{
		Background: defaultBackground,
		Empty:      defaultEmpty,
		Filler:     defaultFiller,
		Level1:     defaultLevel1,
		Level2:     defaultLevel2,
		Level3:     defaultLevel3,
		Level4:     defaultLevel4,
		Level5:     defaultLevel5,
		Checked:    defaultChecked,
		Today:      defaultToday,
	}
}

// WithDefaults fills blank colors from DefaultPalette.
func (p Palette) WithDefaults() Palette {
	d := DefaultPalette()
	p.Background = colorOrDefault(p.Background, d.Background)
	p.Empty = colorOrDefault(p.Empty, d.Empty)
	p.Filler = colorOrDefault(p.Filler, d.Filler)
	p.Level1 = colorOrDefault(p.Level1, d.Level1)
	p.Level2 = colorOrDefault(p.Level2, d.Level2)
	p.Level3 = colorOrDefault(p.Level3, d.Level3)
	p.Level4 = colorOrDefault(p.Level4, d.Level4)
	p.Level5 = colorOrDefault(p.Level5, d.Level5)
	p.Checked = colorOrDefault(p.Checked, d.Checked)
	p.Today = colorOrDefault(p.Today, d.Today)
	return p
}

func colorOrDefault(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

func (p Palette) Validate() error {
	colorFields := []struct {
		name  string
		value string
	}{
		{"background", p.Background},
		{"empty", p.Empty},
		{"filler", p.Filler},
		{"level1", p.Level1},
		{"level2", p.Level2},
		{"level3", p.Level3},
		{"level4", p.Level4},
		{"level5", p.Level5},
		{"checked", p.Checked},
		{"today", p.Today},
	}
	for _, field := range colorFields {
		if !hexColorRegex.MatchString(field.value) {
			return fmt.Errorf("%s must be a 6-digit hex color like #AABBCC", field.name)
		}
	}
	return nil
}

// Level returns the color for a heat level, clamping out-of-range levels.
func (p Palette) Level(level int) string {
	switch {
	case level <= 0:
		return p.Empty
	case level == 1:
		return p.Level1
	case level == 2:
		return p.Level2
	case level == 3:
		return p.Level3
	case level == 4:
		return p.Level4
	default:
		return p.Level5
	}
}

// TextColorFor picks black or white, whichever contrasts more with
// backgroundColor. Invalid colors get white.
func TextColorFor(backgroundColor string) string {
	dark, err := contrastRatio(darkTextColor, backgroundColor)
	if err != nil {
		return lightTextColor
	}
	light, err := contrastRatio(lightTextColor, backgroundColor)
	if err != nil {
		return lightTextColor
	}
	if dark > light {
		return darkTextColor
	}
	return lightTextColor
}

func contrastRatio(textColor, backgroundColor string) (float64, error) {
	textL, err := relativeLuminance(textColor)
	if err != nil {
		return 0, err
	}
	backgroundL, err := relativeLuminance(backgroundColor)
	if err != nil {
		return 0, err
	}
	lightest := math.Max(textL, backgroundL)
	darkest := math.Min(textL, backgroundL)
	return (lightest + 0.05) / (darkest + 0.05), nil
}

func relativeLuminance(hexColor string) (float64, error) {
	r, g, b, err := parseHexColor(hexColor)
	if err != nil {
		return 0, err
	}
	return 0.2126*srgbToLinear(r) + 0.7152*srgbToLinear(g) + 0.0722*srgbToLinear(b), nil
}

func parseHexColor(hexColor string) (float64, float64, float64, error) {
	if !hexColorRegex.MatchString(hexColor) {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %s", hexColor)
	}

	value, err := strconv.ParseUint(strings.TrimPrefix(hexColor, "#"), 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color: %s", hexColor)
	}

	r := float64((value >> 16) & 0xFF)
	g := float64((value >> 8) & 0xFF)
	b := float64(value & 0xFF)

	return r / 255, g / 255, b / 255, nil
}

func srgbToLinear(value float64) float64 {
	if value <= 0.03928 {
		return value / 12.92
	}
	return math.Pow((value+0.055)/1.055, 2.4)
}
