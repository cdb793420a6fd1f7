// Package storage persists the per-source raw record tables and the
// category assignments in SQLite. Raw tables are upsert-only: re-ingesting
// a record with a known key overwrites every non-key field and refreshes
// the ingestion timestamp. Nothing is ever deleted here.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Storage wraps the SQLite database. The access discipline is single
// writer: each logical operation runs inside one transaction and commits
// once at the end, so batch partial state never leaks to other operations.
type Storage struct {
	db *sqlx.DB
}

// Open opens (or creates) the database at path and applies pending schema
// migrations. Use ":memory:" for an ephemeral database in tests.
func Open(path string) (*Storage, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	// A single connection keeps the in-memory database alive across
	// operations and serializes writers, matching the one-writer model.
	db.SetMaxOpenConns(1)

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.WithField("path", path).Debug("Opened transaction database")
	return &Storage{db: db}, nil
}

// Close closes the underlying database.
func (s *Storage) Close() error {
	return s.db.Close()
}

func runMigrations(db *sqlx.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading embedded migrations: %w", err)
	}

	driver, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("preparing migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("preparing migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Tx is one logical write operation. All writes in a batch share the same
// Tx and become visible atomically on Commit.
type Tx struct {
	tx *sqlx.Tx
}

// Begin starts a write transaction.
func (s *Storage) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Commit makes all writes in the transaction visible.
func (t *Tx) Commit() error {
	return t.tx.Commit()
}

// Rollback discards the transaction. Safe to call after Commit.
func (t *Tx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}
