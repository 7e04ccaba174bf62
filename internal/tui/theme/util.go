package theme

import (
	"fmt"
	"strconv"
)

// InterpolateColor blends between two hex colors; pos is clamped to [0, 1].
func InterpolateColor(colorA, colorB string, pos float64) string {
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}

	r1, g1, b1 := ParseHexColor(colorA)
	r2, g2, b2 := ParseHexColor(colorB)

	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-pos) + float64(b)*pos + 0.5)
	}
	return FormatHexColor(mix(r1, r2), mix(g1, g2), mix(b1, b2))
}

// ParseHexColor extracts RGB values from a #RRGGBB string. Malformed input
// yields black.
func ParseHexColor(hex string) (uint8, uint8, uint8) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

// FormatHexColor converts RGB values to a hex color string.
func FormatHexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
