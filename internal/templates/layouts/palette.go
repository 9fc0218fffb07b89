package layouts

import (
	"fmt"
	"strings"

	"github.com/codr1/habitgrid/internal/models"
)

func getPaletteCssVars(palette models.Palette) string {
	defaults := models.DefaultPalette()
	levels := make([]string, 0, 5)
	for level := 1; level <= 5; level++ {
		levels = append(levels, fmt.Sprintf("--grid-level-%d:%s;", level, paletteColorOrDefault(palette.Level(level), defaults.Level(level))))
	}

	return fmt.Sprintf(
		":root{--grid-background:%s;--grid-empty:%s;--grid-filler:%s;%s--grid-checked:%s;--grid-today:%s;--grid-text:%s;}",
		paletteColorOrDefault(palette.Background, defaults.Background),
		paletteColorOrDefault(palette.Empty, defaults.Empty),
		paletteColorOrDefault(palette.Filler, defaults.Filler),
		strings.Join(levels, ""),
		paletteColorOrDefault(palette.Checked, defaults.Checked),
		paletteColorOrDefault(palette.Today, defaults.Today),
		models.TextColorFor(paletteColorOrDefault(palette.Background, defaults.Background)),
	)
}

func paletteColorOrDefault(value string, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	if !models.IsHexColor(trimmed) {
		return fallback
	}
	return trimmed
}
