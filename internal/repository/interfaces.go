package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/roastery/internal/domain"
)

// ErrNotFound is wrapped by every Get* lookup that matches no row.
var ErrNotFound = errors.New("not found")

type CoffeeRepo interface {
	Create(ctx context.Context, c *domain.Coffee) error
	// UpsertBySlug inserts c or, when its slug already exists, overwrites the
	// importable columns of the existing row. It returns the stored id.
	UpsertBySlug(ctx context.Context, c *domain.Coffee) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Coffee, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Coffee, error)
	List(ctx context.Context, filter domain.CoffeeFilter) ([]*domain.Coffee, error)
	Update(ctx context.Context, c *domain.Coffee) error
	Delete(ctx context.Context, id string) error

	SetRegions(ctx context.Context, coffeeID string, regionIDs []string) error
	SetFlavorNotes(ctx context.Context, coffeeID string, noteIDs []string) error
	SetBrewMethods(ctx context.Context, coffeeID string, brewIDs []string) error
	ListRegions(ctx context.Context, coffeeID string) ([]domain.Region, error)
	ListFlavorNotes(ctx context.Context, coffeeID string) ([]domain.FlavorNote, error)
	ListBrewMethods(ctx context.Context, coffeeID string) ([]domain.BrewMethod, error)
}

// ProductTaxonomyRepo stores the shop-side categories, tags and free-form
// attributes that arrive with an export.
type ProductTaxonomyRepo interface {
	UpsertCategory(ctx context.Context, slug, name string) (string, error)
	UpsertTag(ctx context.Context, slug, name string) (string, error)
	LinkCategory(ctx context.Context, coffeeID, categoryID string) error
	LinkTag(ctx context.Context, coffeeID, tagID string) error
	UpsertAttribute(ctx context.Context, a domain.Attribute) error
	ListCategories(ctx context.Context, coffeeID string) ([]domain.ProductCategory, error)
	ListTags(ctx context.Context, coffeeID string) ([]domain.ProductTag, error)
	ListAttributes(ctx context.Context, coffeeID string) ([]domain.Attribute, error)
}

type RegionRepo interface {
	Create(ctx context.Context, r *domain.Region) error
	GetByID(ctx context.Context, id string) (*domain.Region, error)
	List(ctx context.Context) ([]*domain.Region, error)
	Update(ctx context.Context, r *domain.Region) error
	Delete(ctx context.Context, id string) error
}

type BrewMethodRepo interface {
	Create(ctx context.Context, b *domain.BrewMethod) error
	GetByID(ctx context.Context, id string) (*domain.BrewMethod, error)
	List(ctx context.Context) ([]*domain.BrewMethod, error)
	Update(ctx context.Context, b *domain.BrewMethod) error
	Delete(ctx context.Context, id string) error
}

type RoastLevelRepo interface {
	Create(ctx context.Context, r *domain.RoastLevel) error
	GetByID(ctx context.Context, id string) (*domain.RoastLevel, error)
	List(ctx context.Context) ([]*domain.RoastLevel, error)
	Update(ctx context.Context, r *domain.RoastLevel) error
	Delete(ctx context.Context, id string) error
}

type FlavorRepo interface {
	CreateCategory(ctx context.Context, c *domain.FlavorCategory) error
	GetCategory(ctx context.Context, id string) (*domain.FlavorCategory, error)
	// ListCategories orders by level, then name.
	ListCategories(ctx context.Context) ([]domain.FlavorCategory, error)
	UpdateCategory(ctx context.Context, c *domain.FlavorCategory) error
	DeleteCategory(ctx context.Context, id string) error

	CreateNote(ctx context.Context, n *domain.FlavorNote) error
	GetNote(ctx context.Context, id string) (*domain.FlavorNote, error)
	ListNotes(ctx context.Context) ([]domain.FlavorNote, error)
	UpdateNote(ctx context.Context, n *domain.FlavorNote) error
	DeleteNote(ctx context.Context, id string) error

	CountCategories(ctx context.Context) (int, error)
	// DeleteTaxonomy removes every note and category.
	DeleteTaxonomy(ctx context.Context) error
}
