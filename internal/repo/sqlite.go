package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql

	"github.com/pkordes/tourist-guide/internal/domain"
)

// SQLiteSlotRepo is the SQLite implementation of SlotRepo.
// It owns its *sql.DB; call Close when done.
type SQLiteSlotRepo struct {
	db *sql.DB
}

// OpenSQLite opens the SQLite database at path, creating parent directories,
// and applies pending migrations before returning.
func OpenSQLite(ctx context.Context, path string) (*SQLiteSlotRepo, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("repo.OpenSQLite: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: open: %w", err)
	}
	// A single connection serializes writers; SQLite allows only one anyway.
	db.SetMaxOpenConns(1)

	if err := Migrate(ctx, db, goose.DialectSQLite3); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: %w", err)
	}
	return &SQLiteSlotRepo{db: db}, nil
}

// Close releases the underlying database handle.
func (r *SQLiteSlotRepo) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// Get reads the value of a slot by key.
func (r *SQLiteSlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, fmt.Errorf("repo.SQLiteSlotRepo.Get: %w", err)
	}

	const q = `SELECT slot_value FROM kv_slots WHERE slot_key = ?`

	var value string
	if err := r.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("repo.SQLiteSlotRepo.Get: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.SQLiteSlotRepo.Get: %w", err)
	}
	return []byte(value), nil
}

// Put inserts or overwrites a slot.
func (r *SQLiteSlotRepo) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return fmt.Errorf("repo.SQLiteSlotRepo.Put: %w", err)
	}

	const q = `
		INSERT INTO kv_slots (slot_key, slot_value)
		VALUES (?, ?)
		ON CONFLICT (slot_key) DO UPDATE
		SET slot_value = excluded.slot_value,
		    updated_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, q, key, string(value)); err != nil {
		return fmt.Errorf("repo.SQLiteSlotRepo.Put: %w", err)
	}
	return nil
}
