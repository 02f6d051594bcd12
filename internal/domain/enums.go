package domain

type StockStatus string

const (
	StockInStock     StockStatus = "instock"
	StockOutOfStock  StockStatus = "outofstock"
	StockOnBackorder StockStatus = "onbackorder"
)

// Valid reports whether s is one of the known WooCommerce stock states.
func (s StockStatus) Valid() bool {
	switch s {
	case StockInStock, StockOutOfStock, StockOnBackorder:
		return true
	}
	return false
}

type Locale string

const (
	LocaleDE Locale = "de"
	LocaleEN Locale = "en"
)

// ParseLocale maps anything other than "en" to the German default.
func ParseLocale(s string) Locale {
	if s == string(LocaleEN) {
		return LocaleEN
	}
	return LocaleDE
}

type AttributeSource string

const (
	AttributeSourceCSV    AttributeSource = "csv"
	AttributeSourceManual AttributeSource = "manual"
)

// FlavorLevel is the depth of a flavor category: 1 = top, 3 = leaf-adjacent.
type FlavorLevel int

const (
	FlavorLevelTop    FlavorLevel = 1
	FlavorLevelMiddle FlavorLevel = 2
	FlavorLevelLeaf   FlavorLevel = 3
)
