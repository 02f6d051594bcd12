package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradeAddsAttributeSource simulates a database created before
// attribute provenance existed: existing attribute rows must survive and pick
// up the column default.
func TestMigrate_UpgradeAddsAttributeSource(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	legacy := []string{
		`CREATE TABLE coffees (
			id TEXT PRIMARY KEY, slug TEXT NOT NULL UNIQUE, name TEXT NOT NULL,
			roast_level TEXT, region_id TEXT,
			created_at TEXT NOT NULL, updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE coffee_attributes (
			coffee_id TEXT NOT NULL REFERENCES coffees(id) ON DELETE CASCADE,
			key TEXT NOT NULL, value TEXT NOT NULL,
			PRIMARY KEY (coffee_id, key)
		)`,
		`INSERT INTO coffees (id, slug, name, created_at, updated_at)
			VALUES ('c1', 'brasil-santos', 'Brasil Santos', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
		`INSERT INTO coffee_attributes (coffee_id, key, value) VALUES ('c1', 'Herkunft', 'Brasilien')`,
	}
	for _, stmt := range legacy {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	var value, source string
	err = db.QueryRow(`SELECT value, source FROM coffee_attributes WHERE coffee_id = 'c1' AND key = 'Herkunft'`).Scan(&value, &source)
	require.NoError(t, err)
	assert.Equal(t, "Brasilien", value)
	assert.Equal(t, "manual", source)

	// Legacy coffees table lacks the commerce columns; the CREATE IF NOT
	// EXISTS leaves it alone rather than failing.
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM coffees`).Scan(&count))
	assert.Equal(t, 1, count)
}
