package testutil

import (
	"time"

	"github.com/alexanderramin/roastery/internal/csvimport"
	"github.com/alexanderramin/roastery/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Coffee options
type CoffeeOption func(*domain.Coffee)

func WithSlug(slug string) CoffeeOption {
	return func(c *domain.Coffee) {
		c.Slug = slug
	}
}

func WithRoastLevel(level string) CoffeeOption {
	return func(c *domain.Coffee) {
		c.RoastLevel = &level
	}
}

func WithRegionID(id string) CoffeeOption {
	return func(c *domain.Coffee) {
		c.RegionID = &id
	}
}

func WithCountry(country string) CoffeeOption {
	return func(c *domain.Coffee) {
		c.Country = &country
	}
}

func WithPrice(regular string) CoffeeOption {
	return func(c *domain.Coffee) {
		d := decimal.RequireFromString(regular)
		c.RegularPrice = &d
	}
}

func WithSalePrice(sale string) CoffeeOption {
	return func(c *domain.Coffee) {
		d := decimal.RequireFromString(sale)
		c.SalePrice = &d
	}
}

func WithDescription(desc string) CoffeeOption {
	return func(c *domain.Coffee) {
		c.Description = &desc
	}
}

func NewTestCoffee(name string, opts ...CoffeeOption) *domain.Coffee {
	now := time.Now().UTC()
	currency := "EUR"
	c := &domain.Coffee{
		ID:        uuid.New().String(),
		Slug:      csvimport.Slugify(name),
		Name:      name,
		Currency:  &currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewTestRegion(country, regionName string) *domain.Region {
	now := time.Now().UTC()
	return &domain.Region{
		ID:         uuid.New().String(),
		Country:    country,
		RegionName: regionName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func NewTestBrewMethod(name string) *domain.BrewMethod {
	now := time.Now().UTC()
	return &domain.BrewMethod{
		ID:        uuid.New().String(),
		Slug:      csvimport.Slugify(name),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestRoastLevel(name string, sortOrder int) *domain.RoastLevel {
	now := time.Now().UTC()
	return &domain.RoastLevel{
		ID:        uuid.New().String(),
		Slug:      csvimport.Slugify(name),
		Name:      name,
		SortOrder: sortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Flavor category options
type CategoryOption func(*domain.FlavorCategory)

func WithParent(id string) CategoryOption {
	return func(c *domain.FlavorCategory) {
		c.ParentID = &id
	}
}

func WithCategoryColor(hex string) CategoryOption {
	return func(c *domain.FlavorCategory) {
		c.ColorHex = &hex
	}
}

func NewTestCategory(name string, level int, opts ...CategoryOption) *domain.FlavorCategory {
	now := time.Now().UTC()
	c := &domain.FlavorCategory{
		ID:        uuid.New().String(),
		Name:      name,
		Level:     level,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Flavor note options
type NoteOption func(*domain.FlavorNote)

func WithCategory(id string) NoteOption {
	return func(n *domain.FlavorNote) {
		n.CategoryID = &id
	}
}

func WithNoteColor(hex string) NoteOption {
	return func(n *domain.FlavorNote) {
		n.ColorHex = &hex
	}
}

func NewTestNote(name string, opts ...NoteOption) *domain.FlavorNote {
	now := time.Now().UTC()
	n := &domain.FlavorNote{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}
