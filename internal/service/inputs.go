package service

import (
	"github.com/shopspring/decimal"

	"github.com/alexanderramin/roastery/internal/domain"
)

type CoffeeInput struct {
	Name             string           `json:"name" validate:"required,max=200"`
	Slug             string           `json:"slug" validate:"omitempty,slug"`
	ShortDescription *string          `json:"short_description"`
	Description      *string          `json:"description"`
	RoastLevel       *string          `json:"roast_level"`
	ProcessingMethod *string          `json:"processing_method"`
	Varietal         *string          `json:"varietal"`
	AltitudeMin      *int             `json:"altitude_min" validate:"omitempty,gte=0"`
	AltitudeMax      *int             `json:"altitude_max" validate:"omitempty,gte=0"`
	Country          *string          `json:"country"`
	ImageURL         *string          `json:"image_url" validate:"omitempty,url"`
	SKU              *string          `json:"sku"`
	RegularPrice     *decimal.Decimal `json:"regular_price"`
	SalePrice        *decimal.Decimal `json:"sale_price"`
	Currency         string           `json:"currency" validate:"omitempty,len=3"`
	StockStatus      *string          `json:"stock_status" validate:"omitempty,oneof=instock outofstock onbackorder"`
	ManageStock      bool             `json:"manage_stock"`
	StockQuantity    *int             `json:"stock_quantity"`
	ProductURL       *string          `json:"product_url" validate:"omitempty,url"`
	RegionIDs        []string         `json:"region_ids" validate:"dive,required"`
	FlavorNoteIDs    []string         `json:"flavor_note_ids" validate:"dive,required"`
	BrewMethodIDs    []string         `json:"brew_method_ids" validate:"dive,required"`
}

// apply copies the input onto c. The primary region is the first listed one.
func (in CoffeeInput) apply(c *domain.Coffee) {
	c.Name = in.Name
	c.Slug = in.Slug
	c.ShortDescription = in.ShortDescription
	c.Description = in.Description
	c.RoastLevel = in.RoastLevel
	c.ProcessingMethod = in.ProcessingMethod
	c.Varietal = in.Varietal
	c.AltitudeMin = in.AltitudeMin
	c.AltitudeMax = in.AltitudeMax
	c.Country = in.Country
	c.ImageURL = in.ImageURL
	c.SKU = in.SKU
	c.RegularPrice = in.RegularPrice
	c.SalePrice = in.SalePrice
	c.Currency = domain.StrOrNil(domain.CoalesceStr(in.Currency, "EUR"))
	c.StockStatus = in.StockStatus
	c.ManageStock = in.ManageStock
	c.StockQuantity = in.StockQuantity
	c.ProductURL = in.ProductURL
	c.RegionID = nil
	if len(in.RegionIDs) > 0 {
		c.RegionID = &in.RegionIDs[0]
	}
}

type RegionInput struct {
	Country     string   `json:"country" validate:"required"`
	RegionName  string   `json:"region_name" validate:"required"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,longitude"`
	EmblemURL   *string  `json:"emblem_url" validate:"omitempty,url"`
	Description *string  `json:"description"`
}

type BrewMethodInput struct {
	Name    string  `json:"name" validate:"required"`
	Slug    string  `json:"slug" validate:"omitempty,slug"`
	IconURL *string `json:"icon_url" validate:"omitempty,url"`
}

type RoastLevelInput struct {
	Name        string  `json:"name" validate:"required"`
	Slug        string  `json:"slug" validate:"omitempty,slug"`
	Description *string `json:"description"`
	SortOrder   int     `json:"sort_order" validate:"gte=0"`
}

type FlavorCategoryInput struct {
	Name     string  `json:"name" validate:"required"`
	Level    int     `json:"level" validate:"required,min=1,max=3"`
	ParentID *string `json:"parent_id"`
	ColorHex *string `json:"color_hex" validate:"omitempty,hexcolor"`
}

type FlavorNoteInput struct {
	Name        string  `json:"name" validate:"required"`
	CategoryID  *string `json:"category_id"`
	ColorHex    *string `json:"color_hex" validate:"omitempty,hexcolor"`
	Description *string `json:"description"`
	IconURL     *string `json:"icon_url" validate:"omitempty,url"`
}
