package game

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// A returns the colour with an alpha channel.
func (c RGB) A(a uint8) RGBA { return RGBA{R: c.R, G: c.G, B: c.B, A: a} }

// Opaque returns the colour fully opaque.
func (c RGB) Opaque() RGBA { return c.A(255) }

// RGBA is a non-premultiplied colour with alpha.
type RGBA struct {
	R, G, B, A uint8
}

// ParseHexRGB parses "#RRGGBB" or "RRGGBB".
func ParseHexRGB(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("parse colour %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

var Palette = struct {
	Kart1     RGB
	Kart2     RGB
	Wheel     RGB
	Label     RGB
	HUDBand   RGBA
	HUDText   RGB
	Unknown   RGB
	Missile   RGB
	Shield    RGB
	Turbo     RGB
	Oil       RGB
	PauseMask RGBA
}{
	Kart1:     RGB{R: 0xFF, G: 0x6B, B: 0x6B},
	Kart2:     RGB{R: 0x4E, G: 0xCD, B: 0xC4},
	Wheel:     RGB{R: 0x33, G: 0x33, B: 0x33},
	Label:     RGB{R: 0xFF, G: 0xFF, B: 0xFF},
	HUDBand:   RGBA{R: 0, G: 0, B: 0, A: 178},
	HUDText:   RGB{R: 0xFF, G: 0xFF, B: 0xFF},
	Unknown:   RGB{R: 0x88, G: 0x88, B: 0x88},
	Missile:   RGB{R: 0xFF, G: 0x44, B: 0x44},
	Shield:    RGB{R: 0x44, G: 0xFF, B: 0x44},
	Turbo:     RGB{R: 0xFF, G: 0xFF, B: 0x44},
	Oil:       RGB{R: 0x44, G: 0x44, B: 0x44},
	PauseMask: RGBA{R: 0, G: 0, B: 0, A: 178},
}

func powerUpColor(k PowerUpKind) RGB {
	switch k {
	case PowerMissile:
		return Palette.Missile
	case PowerShield:
		return Palette.Shield
	case PowerTurbo:
		return Palette.Turbo
	case PowerOil:
		return Palette.Oil
	}
	return Palette.Unknown
}
