// Package sqlite provides the SQLite-backed record store for nbsharvest.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait up to 5 seconds on lock contention before failing.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode keeps each insert durable without rewriting the whole file,
	// which is the checkpoint boundary the pipeline depends on.
	// Not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist.
// The unique index on source_url excludes the "unknown" sentinel: records
// whose origin could not be resolved never block each other.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT 'unknown',
			summary TEXT NOT NULL DEFAULT 'unknown',
			status TEXT NOT NULL DEFAULT 'unknown',
			location_name TEXT NOT NULL DEFAULT 'unknown',
			country TEXT NOT NULL DEFAULT 'unknown',
			scale TEXT NOT NULL DEFAULT 'unknown',
			solution_types TEXT NOT NULL DEFAULT '[]',
			challenges_addressed TEXT NOT NULL DEFAULT '[]',
			health_linkages_primary TEXT NOT NULL DEFAULT '[]',
			impacts TEXT NOT NULL DEFAULT '[]',
			governance TEXT NOT NULL DEFAULT 'unknown',
			source_url TEXT NOT NULL,
			environmental_context TEXT NOT NULL DEFAULT 'unknown',
			data_source TEXT NOT NULL DEFAULT '',
			source_file TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL DEFAULT '',
			processed_at TEXT NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS idx_records_source_url
			ON records(source_url) WHERE source_url != 'unknown';
		CREATE INDEX IF NOT EXISTS idx_records_data_source ON records(data_source);
	`

	_, err := db.db.Exec(schema)
	return err
}
