package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/roastery/internal/db"
	"github.com/alexanderramin/roastery/internal/domain"
)

// SQLiteCoffeeRepo implements CoffeeRepo using a SQLite database.
type SQLiteCoffeeRepo struct {
	db db.DBTX
}

func NewSQLiteCoffeeRepo(conn db.DBTX) *SQLiteCoffeeRepo {
	return &SQLiteCoffeeRepo{db: conn}
}

const coffeeColumns = `id, slug, name, short_description, description, roast_level, processing_method,
	varietal, altitude_min, altitude_max, country, region_id, image_url, sku, regular_price, sale_price,
	currency, stock_status, manage_stock, stock_quantity, product_url, external_id, created_at, updated_at`

func coffeeArgs(c *domain.Coffee) []any {
	return []any{
		c.ID,
		c.Slug,
		c.Name,
		nullableStr(c.ShortDescription),
		nullableStr(c.Description),
		nullableStr(c.RoastLevel),
		nullableStr(c.ProcessingMethod),
		nullableStr(c.Varietal),
		nullableIntToValue(c.AltitudeMin),
		nullableIntToValue(c.AltitudeMax),
		nullableStr(c.Country),
		nullableStr(c.RegionID),
		nullableStr(c.ImageURL),
		nullableStr(c.SKU),
		decimalToValue(c.RegularPrice),
		decimalToValue(c.SalePrice),
		nullableStr(c.Currency),
		nullableStr(c.StockStatus),
		boolToInt(c.ManageStock),
		nullableIntToValue(c.StockQuantity),
		nullableStr(c.ProductURL),
		nullableStr(c.ExternalID),
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	}
}

func (r *SQLiteCoffeeRepo) Create(ctx context.Context, c *domain.Coffee) error {
	query := `INSERT INTO coffees (` + coffeeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, coffeeArgs(c)...); err != nil {
		return fmt.Errorf("inserting coffee: %w", err)
	}
	return nil
}

// UpsertBySlug only overwrites the columns an export carries, so editorial
// fields (roast level, region, origin data) survive a re-import.
func (r *SQLiteCoffeeRepo) UpsertBySlug(ctx context.Context, c *domain.Coffee) (string, error) {
	query := `INSERT INTO coffees (` + coffeeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			name = excluded.name,
			short_description = excluded.short_description,
			description = excluded.description,
			image_url = excluded.image_url,
			sku = excluded.sku,
			regular_price = excluded.regular_price,
			sale_price = excluded.sale_price,
			currency = excluded.currency,
			stock_status = excluded.stock_status,
			manage_stock = excluded.manage_stock,
			stock_quantity = excluded.stock_quantity,
			product_url = excluded.product_url,
			external_id = excluded.external_id,
			updated_at = excluded.updated_at
		RETURNING id`

	var id string
	if err := r.db.QueryRowContext(ctx, query, coffeeArgs(c)...).Scan(&id); err != nil {
		return "", fmt.Errorf("upserting coffee %q: %w", c.Slug, err)
	}
	return id, nil
}

func (r *SQLiteCoffeeRepo) GetByID(ctx context.Context, id string) (*domain.Coffee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+coffeeColumns+` FROM coffees WHERE id = ?`, id)
	return r.scanOne(row)
}

func (r *SQLiteCoffeeRepo) GetBySlug(ctx context.Context, slug string) (*domain.Coffee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+coffeeColumns+` FROM coffees WHERE slug = ?`, slug)
	return r.scanOne(row)
}

func (r *SQLiteCoffeeRepo) List(ctx context.Context, filter domain.CoffeeFilter) ([]*domain.Coffee, error) {
	var (
		where []string
		args  []any
	)
	if filter.RegionID != "" {
		where = append(where, `(c.region_id = ? OR EXISTS (
			SELECT 1 FROM coffee_regions cr WHERE cr.coffee_id = c.id AND cr.region_id = ?))`)
		args = append(args, filter.RegionID, filter.RegionID)
	}
	if filter.RoastLevel != "" {
		where = append(where, `c.roast_level = ? COLLATE NOCASE`)
		args = append(args, filter.RoastLevel)
	}
	if filter.FlavorNoteID != "" {
		where = append(where, `EXISTS (
			SELECT 1 FROM coffee_flavor_notes cf WHERE cf.coffee_id = c.id AND cf.flavor_id = ?)`)
		args = append(args, filter.FlavorNoteID)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		where = append(where, `(c.name LIKE ? OR c.short_description LIKE ?)`)
		like := "%" + q + "%"
		args = append(args, like, like)
	}

	query := `SELECT ` + prefixColumns("c.", coffeeColumns) + ` FROM coffees c`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY c.name COLLATE NOCASE, c.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing coffees: %w", err)
	}
	defer rows.Close()

	var coffees []*domain.Coffee
	for rows.Next() {
		c, err := scanCoffee(rows)
		if err != nil {
			return nil, err
		}
		coffees = append(coffees, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating coffees: %w", err)
	}
	return coffees, nil
}

func (r *SQLiteCoffeeRepo) Update(ctx context.Context, c *domain.Coffee) error {
	query := `UPDATE coffees SET slug = ?, name = ?, short_description = ?, description = ?,
		roast_level = ?, processing_method = ?, varietal = ?, altitude_min = ?, altitude_max = ?,
		country = ?, region_id = ?, image_url = ?, sku = ?, regular_price = ?, sale_price = ?,
		currency = ?, stock_status = ?, manage_stock = ?, stock_quantity = ?, product_url = ?,
		external_id = ?, updated_at = ?
		WHERE id = ?`
	// coffeeArgs is id-first and ends with created_at, updated_at.
	args := coffeeArgs(c)
	params := make([]any, 0, len(args))
	params = append(params, args[1:22]...)
	params = append(params, args[23], c.ID)
	res, err := r.db.ExecContext(ctx, query, params...)
	if err != nil {
		return fmt.Errorf("updating coffee: %w", err)
	}
	return requireAffected(res, "coffee")
}

func (r *SQLiteCoffeeRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM coffees WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting coffee: %w", err)
	}
	return nil
}

func (r *SQLiteCoffeeRepo) SetRegions(ctx context.Context, coffeeID string, regionIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM coffee_regions WHERE coffee_id = ?`, coffeeID); err != nil {
		return fmt.Errorf("clearing coffee regions: %w", err)
	}
	now := nowUTC()
	for _, id := range regionIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO coffee_regions (coffee_id, region_id, created_at) VALUES (?, ?, ?)`,
			coffeeID, id, now); err != nil {
			return fmt.Errorf("linking region %s: %w", id, err)
		}
	}
	return nil
}

func (r *SQLiteCoffeeRepo) SetFlavorNotes(ctx context.Context, coffeeID string, noteIDs []string) error {
	return r.replaceLinks(ctx, "coffee_flavor_notes", "flavor_id", coffeeID, noteIDs)
}

func (r *SQLiteCoffeeRepo) SetBrewMethods(ctx context.Context, coffeeID string, brewIDs []string) error {
	return r.replaceLinks(ctx, "coffee_brew_methods", "brew_id", coffeeID, brewIDs)
}

// replaceLinks rewrites a coffee's rows in a two-column join table. table and
// column are package constants, never user input.
func (r *SQLiteCoffeeRepo) replaceLinks(ctx context.Context, table, column, coffeeID string, ids []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE coffee_id = ?`, coffeeID); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	for _, id := range ids {
		query := `INSERT OR IGNORE INTO ` + table + ` (coffee_id, ` + column + `) VALUES (?, ?)`
		if _, err := r.db.ExecContext(ctx, query, coffeeID, id); err != nil {
			return fmt.Errorf("inserting %s row: %w", table, err)
		}
	}
	return nil
}

func (r *SQLiteCoffeeRepo) ListRegions(ctx context.Context, coffeeID string) ([]domain.Region, error) {
	query := `SELECT ` + prefixColumns("r.", regionColumns) + ` FROM regions r
		JOIN coffee_regions cr ON cr.region_id = r.id
		WHERE cr.coffee_id = ? ORDER BY cr.created_at, r.region_name`
	rows, err := r.db.QueryContext(ctx, query, coffeeID)
	if err != nil {
		return nil, fmt.Errorf("listing coffee regions: %w", err)
	}
	defer rows.Close()

	var out []domain.Region
	for rows.Next() {
		reg, err := scanRegion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *reg)
	}
	return out, rows.Err()
}

func (r *SQLiteCoffeeRepo) ListFlavorNotes(ctx context.Context, coffeeID string) ([]domain.FlavorNote, error) {
	query := `SELECT ` + prefixColumns("n.", noteColumns) + ` FROM flavor_notes n
		JOIN coffee_flavor_notes cf ON cf.flavor_id = n.id
		WHERE cf.coffee_id = ? ORDER BY n.name COLLATE NOCASE`
	rows, err := r.db.QueryContext(ctx, query, coffeeID)
	if err != nil {
		return nil, fmt.Errorf("listing coffee flavor notes: %w", err)
	}
	defer rows.Close()

	var out []domain.FlavorNote
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, rows.Err()
}

func (r *SQLiteCoffeeRepo) ListBrewMethods(ctx context.Context, coffeeID string) ([]domain.BrewMethod, error) {
	query := `SELECT ` + prefixColumns("b.", brewColumns) + ` FROM brew_methods b
		JOIN coffee_brew_methods cb ON cb.brew_id = b.id
		WHERE cb.coffee_id = ? ORDER BY b.name COLLATE NOCASE`
	rows, err := r.db.QueryContext(ctx, query, coffeeID)
	if err != nil {
		return nil, fmt.Errorf("listing coffee brew methods: %w", err)
	}
	defer rows.Close()

	var out []domain.BrewMethod
	for rows.Next() {
		b, err := scanBrewMethod(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *SQLiteCoffeeRepo) scanOne(row *sql.Row) (*domain.Coffee, error) {
	c, err := scanCoffee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("coffee: %w", ErrNotFound)
	}
	return c, err
}

func scanCoffee(s rowScanner) (*domain.Coffee, error) {
	var (
		c                                               domain.Coffee
		shortDesc, desc, roast, processing, varietal    sql.NullString
		country, regionID, imageURL, sku, regular, sale sql.NullString
		currency, stockStatus, productURL, externalID   sql.NullString
		altMin, altMax, stockQty                        sql.NullInt64
		manageStock                                     int
		createdAt, updatedAt                            string
	)
	err := s.Scan(
		&c.ID, &c.Slug, &c.Name, &shortDesc, &desc, &roast, &processing,
		&varietal, &altMin, &altMax, &country, &regionID, &imageURL, &sku, &regular, &sale,
		&currency, &stockStatus, &manageStock, &stockQty, &productURL, &externalID, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning coffee: %w", err)
	}

	c.ShortDescription = strPtr(shortDesc)
	c.Description = strPtr(desc)
	c.RoastLevel = strPtr(roast)
	c.ProcessingMethod = strPtr(processing)
	c.Varietal = strPtr(varietal)
	c.AltitudeMin = intPtr(altMin)
	c.AltitudeMax = intPtr(altMax)
	c.Country = strPtr(country)
	c.RegionID = strPtr(regionID)
	c.ImageURL = strPtr(imageURL)
	c.SKU = strPtr(sku)
	c.RegularPrice = parseDecimal(regular)
	c.SalePrice = parseDecimal(sale)
	c.Currency = strPtr(currency)
	c.StockStatus = strPtr(stockStatus)
	c.ManageStock = manageStock != 0
	c.StockQuantity = intPtr(stockQty)
	c.ProductURL = strPtr(productURL)
	c.ExternalID = strPtr(externalID)
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return &c, nil
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(prefix, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = prefix + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
