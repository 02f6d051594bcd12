package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/roastery/internal/db"
	"github.com/alexanderramin/roastery/internal/domain"
)

// SQLiteBrewMethodRepo implements BrewMethodRepo using a SQLite database.
type SQLiteBrewMethodRepo struct {
	db db.DBTX
}

func NewSQLiteBrewMethodRepo(conn db.DBTX) *SQLiteBrewMethodRepo {
	return &SQLiteBrewMethodRepo{db: conn}
}

const brewColumns = `id, slug, name, icon_url, created_at, updated_at`

func (r *SQLiteBrewMethodRepo) Create(ctx context.Context, b *domain.BrewMethod) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO brew_methods (`+brewColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.Slug, b.Name, nullableStr(b.IconURL), formatTime(b.CreatedAt), formatTime(b.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting brew method: %w", err)
	}
	return nil
}

func (r *SQLiteBrewMethodRepo) GetByID(ctx context.Context, id string) (*domain.BrewMethod, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+brewColumns+` FROM brew_methods WHERE id = ?`, id)
	b, err := scanBrewMethod(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("brew method: %w", ErrNotFound)
	}
	return b, err
}

func (r *SQLiteBrewMethodRepo) List(ctx context.Context) ([]*domain.BrewMethod, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+brewColumns+` FROM brew_methods ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("listing brew methods: %w", err)
	}
	defer rows.Close()

	var out []*domain.BrewMethod
	for rows.Next() {
		b, err := scanBrewMethod(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *SQLiteBrewMethodRepo) Update(ctx context.Context, b *domain.BrewMethod) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE brew_methods SET slug = ?, name = ?, icon_url = ?, updated_at = ? WHERE id = ?`,
		b.Slug, b.Name, nullableStr(b.IconURL), formatTime(b.UpdatedAt), b.ID)
	if err != nil {
		return fmt.Errorf("updating brew method: %w", err)
	}
	return requireAffected(res, "brew method")
}

func (r *SQLiteBrewMethodRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM brew_methods WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting brew method: %w", err)
	}
	return nil
}

func scanBrewMethod(s rowScanner) (*domain.BrewMethod, error) {
	var (
		b                    domain.BrewMethod
		icon                 sql.NullString
		createdAt, updatedAt string
	)
	if err := s.Scan(&b.ID, &b.Slug, &b.Name, &icon, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning brew method: %w", err)
	}
	b.IconURL = strPtr(icon)
	b.CreatedAt = parseTime(createdAt)
	b.UpdatedAt = parseTime(updatedAt)
	return &b, nil
}

// SQLiteRoastLevelRepo implements RoastLevelRepo using a SQLite database.
type SQLiteRoastLevelRepo struct {
	db db.DBTX
}

func NewSQLiteRoastLevelRepo(conn db.DBTX) *SQLiteRoastLevelRepo {
	return &SQLiteRoastLevelRepo{db: conn}
}

const roastColumns = `id, slug, name, description, sort_order, created_at, updated_at`

func (r *SQLiteRoastLevelRepo) Create(ctx context.Context, rl *domain.RoastLevel) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO roast_levels (`+roastColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rl.ID, rl.Slug, rl.Name, nullableStr(rl.Description), rl.SortOrder, formatTime(rl.CreatedAt), formatTime(rl.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting roast level: %w", err)
	}
	return nil
}

func (r *SQLiteRoastLevelRepo) GetByID(ctx context.Context, id string) (*domain.RoastLevel, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+roastColumns+` FROM roast_levels WHERE id = ?`, id)
	rl, err := scanRoastLevel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("roast level: %w", ErrNotFound)
	}
	return rl, err
}

// List orders by sort_order so levels read light to dark.
func (r *SQLiteRoastLevelRepo) List(ctx context.Context) ([]*domain.RoastLevel, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+roastColumns+` FROM roast_levels ORDER BY sort_order, name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("listing roast levels: %w", err)
	}
	defer rows.Close()

	var out []*domain.RoastLevel
	for rows.Next() {
		rl, err := scanRoastLevel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rl)
	}
	return out, rows.Err()
}

func (r *SQLiteRoastLevelRepo) Update(ctx context.Context, rl *domain.RoastLevel) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE roast_levels SET slug = ?, name = ?, description = ?, sort_order = ?, updated_at = ? WHERE id = ?`,
		rl.Slug, rl.Name, nullableStr(rl.Description), rl.SortOrder, formatTime(rl.UpdatedAt), rl.ID)
	if err != nil {
		return fmt.Errorf("updating roast level: %w", err)
	}
	return requireAffected(res, "roast level")
}

func (r *SQLiteRoastLevelRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM roast_levels WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting roast level: %w", err)
	}
	return nil
}

func scanRoastLevel(s rowScanner) (*domain.RoastLevel, error) {
	var (
		rl                   domain.RoastLevel
		desc                 sql.NullString
		createdAt, updatedAt string
	)
	if err := s.Scan(&rl.ID, &rl.Slug, &rl.Name, &desc, &rl.SortOrder, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning roast level: %w", err)
	}
	rl.Description = strPtr(desc)
	rl.CreatedAt = parseTime(createdAt)
	rl.UpdatedAt = parseTime(updatedAt)
	return &rl, nil
}
