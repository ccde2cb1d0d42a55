package journal

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS violations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	entity TEXT NOT NULL,
	check_name TEXT NOT NULL,
	level REAL NOT NULL,
	delta REAL NOT NULL,
	distance REAL NOT NULL,
	tags_json TEXT NOT NULL,
	from_x REAL NOT NULL,
	from_y REAL NOT NULL,
	from_z REAL NOT NULL,
	to_x REAL NOT NULL,
	to_y REAL NOT NULL,
	to_z REAL NOT NULL,
	cancelled INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_violations_entity ON violations(entity, created_at);
`

// Open opens the violation journal at path, creating the file and its schema if needed.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitSchema creates the journal tables.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
