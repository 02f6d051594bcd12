package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/alexanderramin/roastery/internal/domain"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatPrice renders "12.50 EUR"; a sale price shows the regular one
// struck through next to it.
func FormatPrice(c *domain.Coffee) string {
	currency := domain.CoalesceStr(domain.StrValue(c.Currency), "EUR")
	money := func(d *decimal.Decimal) string {
		return d.StringFixed(2) + " " + currency
	}
	switch {
	case c.SalePrice != nil && c.RegularPrice != nil:
		return StyleGreen.Render(money(c.SalePrice)) + " " +
			lipgloss.NewStyle().Foreground(ColorDim).Strikethrough(true).Render(money(c.RegularPrice))
	case c.EffectivePrice() != nil:
		return money(c.EffectivePrice())
	default:
		return Dim("--")
	}
}

// FormatAltitude renders "1200–1800 m" from whichever bounds are set.
func FormatAltitude(lo, hi *int) string {
	switch {
	case lo != nil && hi != nil && *lo != *hi:
		return fmt.Sprintf("%d–%d m", *lo, *hi)
	case lo != nil:
		return fmt.Sprintf("%d m", *lo)
	case hi != nil:
		return fmt.Sprintf("%d m", *hi)
	default:
		return Dim("--")
	}
}

// orDash renders an optional string or a dim placeholder.
func orDash(s *string) string {
	if v := domain.StrValue(s); v != "" {
		return v
	}
	return Dim("--")
}
