package flavorwheel

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	NeutralColor = "#cccccc"

	darkText  = "#1f2933"
	lightText = "#ffffff"
)

// fallbackPalette colors the standard top-level categories when the
// taxonomy carries no color of its own.
var fallbackPalette = map[string]string{
	"Floral":           "#FFB6C1",
	"Fruity":           "#FF6347",
	"Sour/Fermented":   "#FFD700",
	"Green/Vegetative": "#32CD32",
	"Other":            "#87CEEB",
	"Roasted":          "#8B4513",
	"Spices":           "#CD853F",
	"Nutty/Cocoa":      "#A0522D",
	"Sweet":            "#DEB887",
}

// FallbackColor returns the palette color for a top-level category name,
// or "" when the name is not in the palette.
func FallbackColor(name string) string {
	return fallbackPalette[name]
}

// HexToRGBA renders "#rrggbb" (or "#rgb") as an rgba() string. Anything else
// renders as light gray.
func HexToRGBA(hex string, alpha float64) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		r, g, b = 200, 200, 200
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(alpha, 'f', -1, 64))
}

// ContrastColor picks dark or light label text for a fill given as hex,
// rgb() or rgba().
func ContrastColor(color string) string {
	r, g, b := 200.0, 200.0, 200.0
	switch {
	case strings.HasPrefix(color, "#"):
		if ri, gi, bi, ok := parseHex(color); ok {
			r, g, b = float64(ri), float64(gi), float64(bi)
		}
	case strings.HasPrefix(color, "rgb"):
		if parts, ok := parseRGBFunc(color); ok {
			r, g, b = parts[0], parts[1], parts[2]
		}
	}
	luminance := (0.299*r + 0.587*g + 0.114*b) / 255
	if luminance > 0.55 {
		return darkText
	}
	return lightText
}

func parseHex(hex string) (r, g, b int, ok bool) {
	if !strings.HasPrefix(hex, "#") {
		return 0, 0, 0, false
	}
	digits := hex[1:]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	if len(digits) != 6 {
		return 0, 0, 0, false
	}
	n, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(n>>16) & 0xff, int(n>>8) & 0xff, int(n) & 0xff, true
}

func parseRGBFunc(s string) ([3]float64, bool) {
	var out [3]float64
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return out, false
	}
	parts := strings.Split(s[open+1:end], ",")
	if len(parts) < 3 {
		return out, false
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return out, false
		}
		out[i] = v
	}
	return out, true
}
