package formatter

import (
	"regexp"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/roastery/internal/domain"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestFormatPrice(t *testing.T) {
	usd := "USD"
	tests := []struct {
		name   string
		coffee domain.Coffee
		want   string
	}{
		{"regular only", domain.Coffee{RegularPrice: dec("12.5")}, "12.50 EUR"},
		{"sale and regular", domain.Coffee{RegularPrice: dec("14"), SalePrice: dec("11.9")}, "11.90 EUR 14.00 EUR"},
		{"sale only", domain.Coffee{SalePrice: dec("9"), Currency: &usd}, "9.00 USD"},
		{"no price", domain.Coffee{}, "--"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(FormatPrice(&tt.coffee)))
		})
	}
}

func TestFormatAltitude(t *testing.T) {
	lo, hi := 1200, 1800
	assert.Equal(t, "1200–1800 m", stripANSI(FormatAltitude(&lo, &hi)))
	assert.Equal(t, "1200 m", stripANSI(FormatAltitude(&lo, &lo)))
	assert.Equal(t, "1800 m", stripANSI(FormatAltitude(nil, &hi)))
	assert.Equal(t, "--", stripANSI(FormatAltitude(nil, nil)))
}

func TestToHex(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"#DA1D23", "#DA1D23", true},
		{"rgba(218, 29, 35, 0.25)", "#da1d23", true},
		{"rgba(300,0,0,1)", "#ff0000", true},
		{"red", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := toHex(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestStockPill(t *testing.T) {
	in, out := "instock", "outofstock"
	assert.Equal(t, "● in stock", stripANSI(StockPill(&in)))
	assert.Equal(t, "○ sold out", stripANSI(StockPill(&out)))
	assert.Equal(t, "--", stripANSI(StockPill(nil)))
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	got := stripANSI(RenderTable([]string{"A", "BB"}, [][]string{
		{Bold("long cell"), "x"},
		{"s", Dim("y")},
	}))
	want := "A" + strings.Repeat(" ", 10) + "BB\n" +
		"─────────  ──\n" +
		"long cell  x\n" +
		"s" + strings.Repeat(" ", 10) + "y\n"
	assert.Equal(t, want, got)
}
