package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDB_Memory(t *testing.T) {
	database, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	defer database.Close()

	var name string
	err = database.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'verdicts'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "verdicts", name)
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "audit.db")
	database, err := OpenDB(path)
	require.NoError(t, err)
	database.Close()

	assert.FileExists(t, path)
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('verdicts') WHERE name = 'latency_ms'`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestMigrate_VerdictsTableCarriesLatency(t *testing.T) {
	database, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	defer database.Close()

	var ddl string
	require.NoError(t, database.QueryRow(`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'verdicts'`).Scan(&ddl))
	assert.Contains(t, ddl, "latency_ms INTEGER NOT NULL DEFAULT 0")

	for _, stmt := range migrations {
		assert.NotContains(t, stmt, "ALTER TABLE")
	}
}
