package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/roastery/internal/domain"
)

// Roastery palette: warm browns on a gruvbox base.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#d65d0e")
	ColorRoast  = lipgloss.Color("#a0522d")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleRoast  = lipgloss.NewStyle().Foreground(ColorRoast)
)

// StockPill renders a WooCommerce stock status.
func StockPill(status *string) string {
	switch domain.StrValue(status) {
	case "instock":
		return StyleGreen.Render("● in stock")
	case "onbackorder":
		return StyleYellow.Render("◐ backorder")
	case "outofstock":
		return StyleRed.Render("○ sold out")
	default:
		return StyleDim.Render("--")
	}
}

// Swatch renders a two-cell block in color. Wheel colors come as "#rrggbb"
// or "rgba(r, g, b, a)"; anything else renders dim.
func Swatch(color string) string {
	hex, ok := toHex(color)
	if !ok {
		return StyleDim.Render("░░")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██")
}

func toHex(color string) (string, bool) {
	color = strings.TrimSpace(color)
	if strings.HasPrefix(color, "#") && (len(color) == 7 || len(color) == 4) {
		return color, true
	}
	var r, g, b int
	var a float64
	if _, err := fmt.Sscanf(strings.ReplaceAll(color, " ", ""), "rgba(%d,%d,%d,%g)", &r, &g, &b, &a); err != nil {
		return "", false
	}
	return fmt.Sprintf("#%02x%02x%02x", clampByte(r), clampByte(g), clampByte(b)), true
}

func clampByte(v int) int {
	return max(0, min(255, v))
}

// Header renders an upper-cased section title with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
