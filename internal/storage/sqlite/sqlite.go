// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. Those are the same properties as the on-device key/value store the
// roster was designed around.
//
// The data lives in one two-column table (key, value). The roster is a
// single row whose value is the JSON array.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/student-roster/internal/config"
	"github.com/aanand-mishra/student-roster/internal/storage"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// Ensure SQLite implements storage.Storage.
var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite database at cfg.StoragePath and creates the
// key/value table if it does not already exist.
func New(cfg *config.Config) (*SQLite, error) {
	return Open(cfg.StoragePath)
}

// Open is New for callers that only have a path (tests, tools).
func Open(path string) (*SQLite, error) {
	// The driver creates the file but not its directory.
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite.Open: create dir: %w", err)
	}

	// sql.Open does NOT open a real connection yet; it just validates
	// the driver name and data source name (DSN).
	// The API and the terminal UI may share the file, so a writer waits up
	// to five seconds for the other's lock instead of failing at once.
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite.Open: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent and safe to run on every
	// startup.
	//
	// Schema:
	//   key   — storage key, e.g. "students"
	//   value — opaque string; for the roster, a JSON array
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.Open: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// Get fetches the value stored under key.
//
// A missing row is not an error: sql.ErrNoRows is translated into
// ok == false so the caller can treat it as an empty roster.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	stmt, err := s.Db.PrepareContext(ctx, "SELECT value FROM kv WHERE key = ? LIMIT 1")
	if err != nil {
		return "", false, fmt.Errorf("Get: prepare: %w", err)
	}
	defer stmt.Close()

	var value string
	err = stmt.QueryRowContext(ctx, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("Get: scan: %w", err)
	}

	return value, true, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Set overwrites the value stored under key.
//
// INSERT ... ON CONFLICT DO UPDATE is SQLite's upsert: the first write
// inserts the row, every later write replaces its value. The ? placeholders
// keep the value out of the SQL text.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Set(ctx context.Context, key, value string) error {
	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
	)
	if err != nil {
		return fmt.Errorf("Set: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, key, value); err != nil {
		return fmt.Errorf("Set: exec: %w", err)
	}

	return nil
}
