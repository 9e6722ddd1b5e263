package db

import (
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Open opens (or creates) a local SQLite database file and applies the schema.
// The schema uses CREATE ... IF NOT EXISTS throughout, so Open is safe to call
// on every process start.
func Open(path string) (*sqlx.DB, error) {
	if path == "" {
		path = "spiralscreen.db"
	}

	d, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// journal_mode may not be supported for in-memory databases. Ignore errors.
	_, _ = d.Exec(`PRAGMA journal_mode=WAL`)
	if _, err := d.Exec(`PRAGMA busy_timeout=5000`); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := d.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if _, err := d.Exec(schema); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return d, nil
}
