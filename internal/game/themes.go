package game

import "strings"

// ThemeConfig is the display palette of a track. Themes never change physics.
type ThemeConfig struct {
	Name    string
	Grass   RGB // outside the track
	Asphalt RGB // track surface
	Line    RGB // dashed border and center divider
}

var (
	ThemeCity = ThemeConfig{
		Name:    "city",
		Grass:   RGB{R: 0x2D, G: 0x5A, B: 0x27},
		Asphalt: RGB{R: 0x44, G: 0x44, B: 0x44},
		Line:    RGB{R: 0xFF, G: 0xFF, B: 0xFF},
	}
	ThemeForest = ThemeConfig{
		Name:    "forest",
		Grass:   RGB{R: 0x1F, G: 0x45, B: 0x1A},
		Asphalt: RGB{R: 0x5A, G: 0x4A, B: 0x36},
		Line:    RGB{R: 0xE8, G: 0xE0, B: 0xB0},
	}
	// ThemeDesert: sand verge with a bleached road.
	ThemeDesert = ThemeConfig{
		Name:    "desert",
		Grass:   RGB{R: 0xC8, G: 0xA8, B: 0x6A},
		Asphalt: RGB{R: 0x6E, G: 0x5E, B: 0x4E},
		Line:    RGB{R: 0xFF, G: 0xF2, B: 0xCC},
	}
	ThemeSpace = ThemeConfig{
		Name:    "space",
		Grass:   RGB{R: 0x0B, G: 0x0B, B: 0x1E},
		Asphalt: RGB{R: 0x2A, G: 0x2A, B: 0x44},
		Line:    RGB{R: 0x7F, G: 0xD4, B: 0xFF},
	}
)

var Themes = []ThemeConfig{ThemeCity, ThemeForest, ThemeDesert, ThemeSpace}

// ThemeByName returns the named theme, falling back to the city palette.
func ThemeByName(name string) ThemeConfig {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCity
}
