package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS regions (
		id          TEXT PRIMARY KEY,
		country     TEXT NOT NULL DEFAULT '',
		region_name TEXT NOT NULL DEFAULT '',
		latitude    REAL,
		longitude   REAL,
		emblem_url  TEXT,
		description TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS coffees (
		id                TEXT PRIMARY KEY,
		slug              TEXT NOT NULL UNIQUE,
		name              TEXT NOT NULL,
		short_description TEXT,
		description       TEXT,
		roast_level       TEXT,
		processing_method TEXT,
		varietal          TEXT,
		altitude_min      INTEGER,
		altitude_max      INTEGER,
		country           TEXT,
		region_id         TEXT REFERENCES regions(id) ON DELETE SET NULL,
		image_url         TEXT,
		sku               TEXT,
		regular_price     TEXT,
		sale_price        TEXT,
		currency          TEXT,
		stock_status      TEXT,
		manage_stock      INTEGER NOT NULL DEFAULT 0,
		stock_quantity    INTEGER,
		product_url       TEXT,
		external_id       TEXT,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_coffees_region ON coffees(region_id)`,
	`CREATE INDEX IF NOT EXISTS idx_coffees_roast ON coffees(roast_level)`,

	`CREATE TABLE IF NOT EXISTS product_categories (
		id         TEXT PRIMARY KEY,
		slug       TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS product_tags (
		id         TEXT PRIMARY KEY,
		slug       TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS coffee_categories (
		coffee_id   TEXT NOT NULL REFERENCES coffees(id) ON DELETE CASCADE,
		category_id TEXT NOT NULL REFERENCES product_categories(id) ON DELETE CASCADE,
		PRIMARY KEY (coffee_id, category_id)
	)`,

	`CREATE TABLE IF NOT EXISTS coffee_tags (
		coffee_id TEXT NOT NULL REFERENCES coffees(id) ON DELETE CASCADE,
		tag_id    TEXT NOT NULL REFERENCES product_tags(id) ON DELETE CASCADE,
		PRIMARY KEY (coffee_id, tag_id)
	)`,

	`CREATE TABLE IF NOT EXISTS coffee_attributes (
		coffee_id TEXT NOT NULL REFERENCES coffees(id) ON DELETE CASCADE,
		key       TEXT NOT NULL,
		value     TEXT NOT NULL,
		PRIMARY KEY (coffee_id, key)
	)`,

	// Attribute provenance was added after the first imports shipped.
	`ALTER TABLE coffee_attributes ADD COLUMN source TEXT NOT NULL DEFAULT 'manual'`,

	`CREATE TABLE IF NOT EXISTS coffee_regions (
		coffee_id  TEXT NOT NULL REFERENCES coffees(id) ON DELETE CASCADE,
		region_id  TEXT NOT NULL REFERENCES regions(id) ON DELETE CASCADE,
		created_at TEXT NOT NULL,
		PRIMARY KEY (coffee_id, region_id)
	)`,

	// parent_id has no foreign key: incomplete taxonomies are tolerated
	// and rendered with orphans at the top level.
	`CREATE TABLE IF NOT EXISTS flavor_categories (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		level      INTEGER NOT NULL CHECK(level BETWEEN 1 AND 3),
		parent_id  TEXT,
		color_hex  TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_flavor_categories_parent ON flavor_categories(parent_id)`,

	`CREATE TABLE IF NOT EXISTS flavor_notes (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		category_id TEXT REFERENCES flavor_categories(id) ON DELETE SET NULL,
		color_hex   TEXT,
		description TEXT,
		icon_url    TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_flavor_notes_category ON flavor_notes(category_id)`,

	`CREATE TABLE IF NOT EXISTS coffee_flavor_notes (
		coffee_id TEXT NOT NULL REFERENCES coffees(id) ON DELETE CASCADE,
		flavor_id TEXT NOT NULL REFERENCES flavor_notes(id) ON DELETE CASCADE,
		PRIMARY KEY (coffee_id, flavor_id)
	)`,

	`CREATE TABLE IF NOT EXISTS brew_methods (
		id         TEXT PRIMARY KEY,
		slug       TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		icon_url   TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS coffee_brew_methods (
		coffee_id TEXT NOT NULL REFERENCES coffees(id) ON DELETE CASCADE,
		brew_id   TEXT NOT NULL REFERENCES brew_methods(id) ON DELETE CASCADE,
		PRIMARY KEY (coffee_id, brew_id)
	)`,

	`CREATE TABLE IF NOT EXISTS roast_levels (
		id          TEXT PRIMARY KEY,
		slug        TEXT NOT NULL UNIQUE,
		name        TEXT NOT NULL,
		description TEXT,
		sort_order  INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
}
