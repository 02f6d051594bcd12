package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/roastery/internal/db"
	"github.com/alexanderramin/roastery/internal/domain"
)

// SQLiteFlavorRepo implements FlavorRepo using a SQLite database.
type SQLiteFlavorRepo struct {
	db db.DBTX
}

func NewSQLiteFlavorRepo(conn db.DBTX) *SQLiteFlavorRepo {
	return &SQLiteFlavorRepo{db: conn}
}

const (
	categoryColumns = `id, name, level, parent_id, color_hex, created_at, updated_at`
	noteColumns     = `id, name, category_id, color_hex, description, icon_url, created_at, updated_at`
)

func (r *SQLiteFlavorRepo) CreateCategory(ctx context.Context, c *domain.FlavorCategory) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO flavor_categories (`+categoryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Level, nullableStr(c.ParentID), nullableStr(c.ColorHex),
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting flavor category: %w", err)
	}
	return nil
}

func (r *SQLiteFlavorRepo) GetCategory(ctx context.Context, id string) (*domain.FlavorCategory, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM flavor_categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("flavor category: %w", ErrNotFound)
	}
	return c, err
}

func (r *SQLiteFlavorRepo) ListCategories(ctx context.Context) ([]domain.FlavorCategory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+categoryColumns+` FROM flavor_categories ORDER BY level, name`)
	if err != nil {
		return nil, fmt.Errorf("listing flavor categories: %w", err)
	}
	defer rows.Close()

	var out []domain.FlavorCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating flavor categories: %w", err)
	}
	return out, nil
}

func (r *SQLiteFlavorRepo) UpdateCategory(ctx context.Context, c *domain.FlavorCategory) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE flavor_categories SET name = ?, level = ?, parent_id = ?, color_hex = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.Level, nullableStr(c.ParentID), nullableStr(c.ColorHex), formatTime(c.UpdatedAt), c.ID)
	if err != nil {
		return fmt.Errorf("updating flavor category: %w", err)
	}
	return requireAffected(res, "flavor category")
}

func (r *SQLiteFlavorRepo) DeleteCategory(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM flavor_categories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting flavor category: %w", err)
	}
	return nil
}

func (r *SQLiteFlavorRepo) CreateNote(ctx context.Context, n *domain.FlavorNote) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO flavor_notes (`+noteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Name, nullableStr(n.CategoryID), nullableStr(n.ColorHex), nullableStr(n.Description),
		nullableStr(n.IconURL), formatTime(n.CreatedAt), formatTime(n.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting flavor note: %w", err)
	}
	return nil
}

func (r *SQLiteFlavorRepo) GetNote(ctx context.Context, id string) (*domain.FlavorNote, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM flavor_notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("flavor note: %w", ErrNotFound)
	}
	return n, err
}

func (r *SQLiteFlavorRepo) ListNotes(ctx context.Context) ([]domain.FlavorNote, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+noteColumns+` FROM flavor_notes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing flavor notes: %w", err)
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating flavor notes: %w", err)
	}
	return out, nil
}

func (r *SQLiteFlavorRepo) UpdateNote(ctx context.Context, n *domain.FlavorNote) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE flavor_notes SET name = ?, category_id = ?, color_hex = ?, description = ?, icon_url = ?, updated_at = ?
		WHERE id = ?`,
		n.Name, nullableStr(n.CategoryID), nullableStr(n.ColorHex), nullableStr(n.Description),
		nullableStr(n.IconURL), formatTime(n.UpdatedAt), n.ID)
	if err != nil {
		return fmt.Errorf("updating flavor note: %w", err)
	}
	return requireAffected(res, "flavor note")
}

func (r *SQLiteFlavorRepo) DeleteNote(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM flavor_notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting flavor note: %w", err)
	}
	return nil
}

func (r *SQLiteFlavorRepo) CountCategories(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flavor_categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting flavor categories: %w", err)
	}
	return n, nil
}

func (r *SQLiteFlavorRepo) DeleteTaxonomy(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM flavor_notes`); err != nil {
		return fmt.Errorf("clearing flavor notes: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM flavor_categories`); err != nil {
		return fmt.Errorf("clearing flavor categories: %w", err)
	}
	return nil
}

func scanCategory(s rowScanner) (*domain.FlavorCategory, error) {
	var (
		c                    domain.FlavorCategory
		parentID, color      sql.NullString
		createdAt, updatedAt string
	)
	if err := s.Scan(&c.ID, &c.Name, &c.Level, &parentID, &color, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning flavor category: %w", err)
	}
	c.ParentID = strPtr(parentID)
	c.ColorHex = strPtr(color)
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return &c, nil
}

func scanNote(s rowScanner) (*domain.FlavorNote, error) {
	var (
		n                       domain.FlavorNote
		categoryID, color, desc sql.NullString
		icon                    sql.NullString
		createdAt, updatedAt    string
	)
	if err := s.Scan(&n.ID, &n.Name, &categoryID, &color, &desc, &icon, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning flavor note: %w", err)
	}
	n.CategoryID = strPtr(categoryID)
	n.ColorHex = strPtr(color)
	n.Description = strPtr(desc)
	n.IconURL = strPtr(icon)
	n.CreatedAt = parseTime(createdAt)
	n.UpdatedAt = parseTime(updatedAt)
	return &n, nil
}
