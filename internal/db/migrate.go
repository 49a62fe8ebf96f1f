package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Statements are idempotent and
// re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS verdicts (
		id         TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		source     TEXT NOT NULL DEFAULT '',
		kind       TEXT NOT NULL
		           CHECK(kind IN ('operation','conversation')),
		operation  TEXT NOT NULL DEFAULT '',
		model      TEXT NOT NULL DEFAULT '',
		risk       TEXT NOT NULL DEFAULT ''
		           CHECK(risk IN ('','low','medium','high')),
		reasons    TEXT NOT NULL DEFAULT '[]',
		actions    TEXT NOT NULL DEFAULT '[]',
		latency_ms INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_verdicts_created ON verdicts(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_verdicts_risk ON verdicts(risk)`,
}
