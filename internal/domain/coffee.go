package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coffee is a catalog product. Commerce fields mirror the WooCommerce export
// the importer reads; all optional columns are pointers so "absent" survives
// a round trip through the store.
type Coffee struct {
	ID               string           `json:"id"`
	Slug             string           `json:"slug"`
	Name             string           `json:"name"`
	ShortDescription *string          `json:"short_description"`
	Description      *string          `json:"description"`
	RoastLevel       *string          `json:"roast_level"`
	ProcessingMethod *string          `json:"processing_method"`
	Varietal         *string          `json:"varietal"`
	AltitudeMin      *int             `json:"altitude_min"`
	AltitudeMax      *int             `json:"altitude_max"`
	Country          *string          `json:"country"`
	RegionID         *string          `json:"region_id"`
	ImageURL         *string          `json:"image_url"`
	SKU              *string          `json:"sku"`
	RegularPrice     *decimal.Decimal `json:"regular_price"`
	SalePrice        *decimal.Decimal `json:"sale_price"`
	Currency         *string          `json:"currency"`
	StockStatus      *string          `json:"stock_status"`
	ManageStock      bool             `json:"manage_stock"`
	StockQuantity    *int             `json:"stock_quantity"`
	ProductURL       *string          `json:"product_url"`
	ExternalID       *string          `json:"external_id"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// EffectivePrice is the sale price when one is set, otherwise the regular price.
func (c *Coffee) EffectivePrice() *decimal.Decimal {
	if c.SalePrice != nil {
		return c.SalePrice
	}
	return c.RegularPrice
}

// CoffeeDetail is a coffee with its relations resolved.
type CoffeeDetail struct {
	Coffee
	Regions     []Region          `json:"regions"`
	FlavorNotes []FlavorNote      `json:"flavor_notes"`
	BrewMethods []BrewMethod      `json:"brew_methods"`
	Categories  []ProductCategory `json:"categories"`
	Tags        []ProductTag      `json:"tags"`
	Attributes  []Attribute       `json:"attributes"`
}

// CoffeeFilter narrows a coffee listing. Empty fields do not filter.
type CoffeeFilter struct {
	RegionID     string
	RoastLevel   string
	FlavorNoteID string
	Query        string
}

type ProductCategory struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductTag struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Attribute is a free-form key/value pair attached to a coffee.
type Attribute struct {
	CoffeeID string          `json:"coffee_id"`
	Key      string          `json:"key"`
	Value    string          `json:"value"`
	Source   AttributeSource `json:"source"`
}
