package db

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent DDL statements run on every open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id           TEXT PRIMARY KEY,
		started_at   TEXT NOT NULL,
		saved_at     TEXT NOT NULL,
		total_items  INTEGER NOT NULL DEFAULT 0,
		total_amount REAL NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS cart_lines (
		session_id  TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		quantity    INTEGER NOT NULL CHECK(quantity > 0),
		unit_price  REAL NOT NULL,
		total_price REAL NOT NULL,
		confidence  REAL NOT NULL DEFAULT 0,
		position    INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (session_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS history_entries (
		id         TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
		seq        INTEGER NOT NULL,
		at         TEXT NOT NULL,
		item       TEXT NOT NULL,
		price      REAL NOT NULL,
		confidence REAL NOT NULL DEFAULT 0,
		bbox       TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cart_lines_session ON cart_lines(session_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_history_session ON history_entries(session_id, seq)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
