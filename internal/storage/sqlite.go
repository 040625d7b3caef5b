package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

// timestampLayout is fixed width so stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

var timeZero time.Time

// clock returns the current time. Stores take one so tests can pin it.
type clock func() time.Time

// stamp returns the timestamp for a mutation of a row last touched at
// prev. The result is always strictly after prev.
func (c clock) stamp(prev time.Time) time.Time {
	now := c().UTC()
	if !now.After(prev) {
		now = prev.Add(time.Microsecond).UTC()
	}
	return now
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		// Rows written by other tools may use any RFC 3339 variant.
		t, err = time.Parse(time.RFC3339Nano, s)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// Option configures a SQLiteStorage.
type Option func(*SQLiteStorage)

// WithClock replaces time.Now as the source of created_at and updated_at.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStorage) {
		s.now = now
	}
}

// SQLiteStorage owns the single database connection and the stores built on it.
type SQLiteStorage struct {
	db         *sqlx.DB
	now        clock
	categories *CategoryStore
	inventory  *InventoryStore
	dbPath     string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string, opts ...Option) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection for the life of the process; every call commits on its own.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.categories = &CategoryStore{db: db, now: s.now}
	s.inventory = &InventoryStore{db: db, now: s.now, types: s.categories}

	slog.Debug("opened database", "path", dbPath)
	return s, nil
}

// Categories returns the food type store.
func (s *SQLiteStorage) Categories() *CategoryStore {
	return s.categories
}

// Inventory returns the food item store.
func (s *SQLiteStorage) Inventory() *InventoryStore {
	return s.inventory
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Open creates the storage, applies the schema and seeds the default food
// types when the table is empty. It is the startup sequence of the app.
func Open(ctx context.Context, dbPath string, opts ...Option) (*SQLiteStorage, error) {
	s, err := NewSQLiteStorage(dbPath, opts...)
	if err != nil {
		return nil, err
	}

	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if _, err := s.categories.SeedIfEmpty(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to seed food types: %w", err)
	}

	return s, nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// rollback is deferred after BeginTxx; it is a no-op once the tx committed.
func rollback(tx *sqlx.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		slog.Warn("failed to roll back transaction", "error", err)
	}
}
