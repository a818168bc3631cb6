// ABOUTME: SQLite implementation of the Gateway interface using modernc.org/sqlite
// ABOUTME: Owns the single connection, serializes operations, creates schema idempotently

package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Gateway interface using SQLite.
//
// A single mutex guards every exported operation for its full duration, so
// operations are linearizable: multi-statement operations never interleave.
// Once an operation holds the lock it runs to completion; there is no abort
// path. Adequate for the low request rate this service sees.
type SQLiteStore struct {
	mu     sync.Mutex
	db     *sql.DB
	logger *slog.Logger
}

var _ Gateway = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is created if it doesn't exist. Parent directories are created
// if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// One connection: the store is the single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	logger.Info("SQLite store initialized", "path", path)
	return s, nil
}

// createSchema creates the database tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS canonical_words (
			word      TEXT PRIMARY KEY,
			canonical TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_canonical_target ON canonical_words(canonical);

		CREATE TABLE IF NOT EXISTS participants (
			name TEXT PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS mistakes (
			name    TEXT NOT NULL,
			mistake TEXT NOT NULL,
			count   INTEGER NOT NULL DEFAULT 1 CHECK (count >= 1),

			PRIMARY KEY (name, mistake)
		);

		CREATE TABLE IF NOT EXISTS translations (
			english   TEXT NOT NULL,
			hebrew    TEXT NOT NULL,
			suggestor TEXT NOT NULL DEFAULT '',

			PRIMARY KEY (english, hebrew)
		);

		CREATE INDEX IF NOT EXISTS idx_translations_english ON translations(english);

		CREATE TABLE IF NOT EXISTS mistake_suggestions (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			name     TEXT NOT NULL,
			mistake  TEXT NOT NULL,
			context  TEXT NOT NULL DEFAULT '',
			reporter TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS translation_suggestions (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			english   TEXT NOT NULL,
			hebrew    TEXT NOT NULL,
			suggestor TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS mistake_suggestion_archive (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			mistake     TEXT NOT NULL,
			context     TEXT NOT NULL,
			reporter    TEXT NOT NULL,
			accepted    INTEGER NOT NULL,
			resolved_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_archive_resolved ON mistake_suggestion_archive(resolved_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// runMigrations applies schema migrations for existing databases.
// These are idempotent - safe to run multiple times.
func (s *SQLiteStore) runMigrations() error {
	// Earlier deployments predate the suggestor and context columns.
	// SQLite doesn't support ADD COLUMN IF NOT EXISTS, so we check first.
	migrations := []struct {
		check  string
		apply  string
		table  string
		column string
	}{
		{
			check:  `SELECT 1 FROM pragma_table_info('translations') WHERE name = 'suggestor'`,
			apply:  `ALTER TABLE translations ADD COLUMN suggestor TEXT NOT NULL DEFAULT ''`,
			table:  "translations",
			column: "suggestor",
		},
		{
			check:  `SELECT 1 FROM pragma_table_info('mistake_suggestions') WHERE name = 'context'`,
			apply:  `ALTER TABLE mistake_suggestions ADD COLUMN context TEXT NOT NULL DEFAULT ''`,
			table:  "mistake_suggestions",
			column: "context",
		},
	}

	for _, m := range migrations {
		var exists int
		err := s.db.QueryRow(m.check).Scan(&exists)
		if err == nil {
			// Column already exists, skip
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("checking %s column on %s: %w", m.column, m.table, err)
		}
		if _, err := s.db.Exec(m.apply); err != nil {
			return fmt.Errorf("adding %s column to %s: %w", m.column, m.table, err)
		}
		s.logger.Info("applied migration", "column", m.column, "table", m.table)
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	s.logger.Info("closing SQLite store")
	return s.db.Close()
}

// isConstraintViolation checks if the error is a SQLite UNIQUE constraint violation
func isConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "constraint failed")
}
