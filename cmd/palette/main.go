// cmd/palette/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/codr1/habitgrid/internal/config"
	"github.com/codr1/habitgrid/internal/models"
)

// Prints a palette block for config/app.yaml with heat levels blended
// between -from and -to, plus the nearest named colors for each level.
func main() {
	var (
		configPath = flag.String("config", "", "Optional config file whose palette is used as the base")
		from       = flag.String("from", "", "Level 1 color (default: current level1)")
		to         = flag.String("to", "", "Level 5 color (default: current level5)")
		matches    = flag.Int("matches", 3, "Named color matches to print per level")
	)
	flag.Parse()

	palette := models.DefaultPalette()
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		palette = cfg.Palette
	}

	low, high := *from, *to
	if low == "" {
		low = palette.Level1
	}
	if high == "" {
		high = palette.Level5
	}

	ramped, err := palette.Ramp(low, high)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := ramped.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := yaml.Marshal(struct {
		Palette models.Palette `yaml:"palette"`
	}{Palette: ramped})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding palette: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(string(out))

	for level := 1; level <= 5; level++ {
		color := ramped.Level(level)
		closest, err := models.ClosestNamedColors(color, *matches)
		if err != nil {
			continue
		}
		fmt.Printf("# level%d %s (text %s):", level, color, models.TextColorFor(color))
		for _, match := range closest {
			fmt.Printf(" %s %.3f;", match.Name, match.Distance)
		}
		fmt.Println()
	}
}
