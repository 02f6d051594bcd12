package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/roastery/internal/db"
	"github.com/alexanderramin/roastery/internal/domain"
)

// SQLiteRegionRepo implements RegionRepo using a SQLite database.
type SQLiteRegionRepo struct {
	db db.DBTX
}

func NewSQLiteRegionRepo(conn db.DBTX) *SQLiteRegionRepo {
	return &SQLiteRegionRepo{db: conn}
}

const regionColumns = `id, country, region_name, latitude, longitude, emblem_url, description, created_at, updated_at`

func (r *SQLiteRegionRepo) Create(ctx context.Context, reg *domain.Region) error {
	query := `INSERT INTO regions (` + regionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		reg.ID,
		reg.Country,
		reg.RegionName,
		nullableFloat(reg.Latitude),
		nullableFloat(reg.Longitude),
		nullableStr(reg.EmblemURL),
		nullableStr(reg.Description),
		formatTime(reg.CreatedAt),
		formatTime(reg.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting region: %w", err)
	}
	return nil
}

func (r *SQLiteRegionRepo) GetByID(ctx context.Context, id string) (*domain.Region, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+regionColumns+` FROM regions WHERE id = ?`, id)
	reg, err := scanRegion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("region: %w", ErrNotFound)
	}
	return reg, err
}

func (r *SQLiteRegionRepo) List(ctx context.Context) ([]*domain.Region, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+regionColumns+` FROM regions ORDER BY country COLLATE NOCASE, region_name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("listing regions: %w", err)
	}
	defer rows.Close()

	var regions []*domain.Region
	for rows.Next() {
		reg, err := scanRegion(rows)
		if err != nil {
			return nil, err
		}
		regions = append(regions, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating regions: %w", err)
	}
	return regions, nil
}

func (r *SQLiteRegionRepo) Update(ctx context.Context, reg *domain.Region) error {
	query := `UPDATE regions SET country = ?, region_name = ?, latitude = ?, longitude = ?,
		emblem_url = ?, description = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		reg.Country,
		reg.RegionName,
		nullableFloat(reg.Latitude),
		nullableFloat(reg.Longitude),
		nullableStr(reg.EmblemURL),
		nullableStr(reg.Description),
		formatTime(reg.UpdatedAt),
		reg.ID,
	)
	if err != nil {
		return fmt.Errorf("updating region: %w", err)
	}
	return requireAffected(res, "region")
}

func (r *SQLiteRegionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM regions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting region: %w", err)
	}
	return nil
}

func scanRegion(s rowScanner) (*domain.Region, error) {
	var (
		reg                  domain.Region
		lat, lng             sql.NullFloat64
		emblem, desc         sql.NullString
		createdAt, updatedAt string
	)
	if err := s.Scan(&reg.ID, &reg.Country, &reg.RegionName, &lat, &lng, &emblem, &desc, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning region: %w", err)
	}
	reg.Latitude = floatPtr(lat)
	reg.Longitude = floatPtr(lng)
	reg.EmblemURL = strPtr(emblem)
	reg.Description = strPtr(desc)
	reg.CreatedAt = parseTime(createdAt)
	reg.UpdatedAt = parseTime(updatedAt)
	return &reg, nil
}
