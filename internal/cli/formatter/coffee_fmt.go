package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/roastery/internal/domain"
)

func FormatCoffeeList(coffees []*domain.Coffee) string {
	rows := make([][]string, 0, len(coffees))
	for _, c := range coffees {
		rows = append(rows, []string{
			Bold(c.Name),
			Dim(c.Slug),
			orDash(c.RoastLevel),
			FormatPrice(c),
			StockPill(c.StockStatus),
		})
	}
	return RenderTable([]string{"NAME", "SLUG", "ROAST", "PRICE", "STOCK"}, rows)
}

// FormatCoffeeDetail renders a coffee with its relations in a box.
func FormatCoffeeDetail(d *domain.CoffeeDetail) string {
	var b strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", StyleDim.Render(fmt.Sprintf("%-12s", label)), value)
	}

	field("ID", TruncID(d.ID))
	field("Slug", d.Slug)
	field("Price", FormatPrice(&d.Coffee))
	field("Stock", StockPill(d.StockStatus))
	field("Roast", orDash(d.RoastLevel))
	field("Process", orDash(d.ProcessingMethod))
	field("Varietal", orDash(d.Varietal))
	field("Altitude", FormatAltitude(d.AltitudeMin, d.AltitudeMax))

	regions := make([]string, len(d.Regions))
	for i, r := range d.Regions {
		regions[i] = r.DisplayName()
	}
	field("Regions", joinOrDash(regions))

	notes := make([]string, len(d.FlavorNotes))
	for i, n := range d.FlavorNotes {
		notes[i] = Swatch(domain.StrValue(n.ColorHex)) + " " + n.Name
	}
	field("Flavors", joinOrDash(notes))

	brews := make([]string, len(d.BrewMethods))
	for i, m := range d.BrewMethods {
		brews[i] = m.Name
	}
	field("Brewing", joinOrDash(brews))

	cats := make([]string, len(d.Categories))
	for i, c := range d.Categories {
		cats[i] = c.Name
	}
	field("Categories", joinOrDash(cats))

	if desc := domain.CoalesceStr(domain.StrValue(d.ShortDescription), domain.StrValue(d.Description)); desc != "" {
		b.WriteString("\n" + StyleFg.Render(desc) + "\n")
	}
	return RenderBox(d.Name, strings.TrimRight(b.String(), "\n"))
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return Dim("--")
	}
	return strings.Join(items, ", ")
}
