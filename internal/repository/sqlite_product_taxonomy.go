package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/roastery/internal/db"
	"github.com/alexanderramin/roastery/internal/domain"
	"github.com/google/uuid"
)

// SQLiteProductTaxonomyRepo implements ProductTaxonomyRepo using a SQLite database.
type SQLiteProductTaxonomyRepo struct {
	db db.DBTX
}

func NewSQLiteProductTaxonomyRepo(conn db.DBTX) *SQLiteProductTaxonomyRepo {
	return &SQLiteProductTaxonomyRepo{db: conn}
}

func (r *SQLiteProductTaxonomyRepo) UpsertCategory(ctx context.Context, slug, name string) (string, error) {
	return r.upsertTerm(ctx, "product_categories", slug, name)
}

func (r *SQLiteProductTaxonomyRepo) UpsertTag(ctx context.Context, slug, name string) (string, error) {
	return r.upsertTerm(ctx, "product_tags", slug, name)
}

// upsertTerm finds or creates a term by slug; an existing term takes the
// latest spelling of its name.
func (r *SQLiteProductTaxonomyRepo) upsertTerm(ctx context.Context, table, slug, name string) (string, error) {
	query := `INSERT INTO ` + table + ` (id, slug, name, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET name = excluded.name
		RETURNING id`
	var id string
	if err := r.db.QueryRowContext(ctx, query, uuid.New().String(), slug, name, nowUTC()).Scan(&id); err != nil {
		return "", fmt.Errorf("upserting %s %q: %w", table, slug, err)
	}
	return id, nil
}

func (r *SQLiteProductTaxonomyRepo) LinkCategory(ctx context.Context, coffeeID, categoryID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO coffee_categories (coffee_id, category_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		coffeeID, categoryID)
	if err != nil {
		return fmt.Errorf("linking category: %w", err)
	}
	return nil
}

func (r *SQLiteProductTaxonomyRepo) LinkTag(ctx context.Context, coffeeID, tagID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO coffee_tags (coffee_id, tag_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		coffeeID, tagID)
	if err != nil {
		return fmt.Errorf("linking tag: %w", err)
	}
	return nil
}

func (r *SQLiteProductTaxonomyRepo) UpsertAttribute(ctx context.Context, a domain.Attribute) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO coffee_attributes (coffee_id, key, value, source) VALUES (?, ?, ?, ?)
		ON CONFLICT(coffee_id, key) DO UPDATE SET value = excluded.value, source = excluded.source`,
		a.CoffeeID, a.Key, a.Value, string(a.Source))
	if err != nil {
		return fmt.Errorf("upserting attribute %q: %w", a.Key, err)
	}
	return nil
}

func (r *SQLiteProductTaxonomyRepo) ListCategories(ctx context.Context, coffeeID string) ([]domain.ProductCategory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT p.id, p.slug, p.name, p.created_at
		FROM product_categories p JOIN coffee_categories cc ON cc.category_id = p.id
		WHERE cc.coffee_id = ? ORDER BY p.name COLLATE NOCASE`, coffeeID)
	if err != nil {
		return nil, fmt.Errorf("listing coffee categories: %w", err)
	}
	defer rows.Close()

	var out []domain.ProductCategory
	for rows.Next() {
		var c domain.ProductCategory
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Slug, &c.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteProductTaxonomyRepo) ListTags(ctx context.Context, coffeeID string) ([]domain.ProductTag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT t.id, t.slug, t.name, t.created_at
		FROM product_tags t JOIN coffee_tags ct ON ct.tag_id = t.id
		WHERE ct.coffee_id = ? ORDER BY t.name COLLATE NOCASE`, coffeeID)
	if err != nil {
		return nil, fmt.Errorf("listing coffee tags: %w", err)
	}
	defer rows.Close()

	var out []domain.ProductTag
	for rows.Next() {
		var t domain.ProductTag
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		t.CreatedAt = parseTime(createdAt)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteProductTaxonomyRepo) ListAttributes(ctx context.Context, coffeeID string) ([]domain.Attribute, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT coffee_id, key, value, source FROM coffee_attributes WHERE coffee_id = ? ORDER BY key`, coffeeID)
	if err != nil {
		return nil, fmt.Errorf("listing attributes: %w", err)
	}
	defer rows.Close()

	var out []domain.Attribute
	for rows.Next() {
		var a domain.Attribute
		var source string
		if err := rows.Scan(&a.CoffeeID, &a.Key, &a.Value, &source); err != nil {
			return nil, fmt.Errorf("scanning attribute: %w", err)
		}
		a.Source = domain.AttributeSource(source)
		out = append(out, a)
	}
	return out, rows.Err()
}
