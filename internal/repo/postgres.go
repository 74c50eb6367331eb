package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/tourist-guide/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgSlotRepo is the Postgres implementation of SlotRepo.
// Values live in the kv_slots table created by migrations/00001.
type pgSlotRepo struct {
	db db
}

// NewPostgresSlotRepo constructs a SlotRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresSlotRepo(db db) SlotRepo {
	return &pgSlotRepo{db: db}
}

// Get reads the value of a slot by key.
func (r *pgSlotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, fmt.Errorf("repo.PostgresSlotRepo.Get: %w", err)
	}

	const q = `
		SELECT slot_value
		FROM kv_slots
		WHERE slot_key = @key`

	var value string
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repo.PostgresSlotRepo.Get: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.PostgresSlotRepo.Get: %w", err)
	}
	return []byte(value), nil
}

// Put inserts or overwrites a slot. The ON CONFLICT clause makes the write a
// single statement, so concurrent writers resolve to last-write-wins.
func (r *pgSlotRepo) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return fmt.Errorf("repo.PostgresSlotRepo.Put: %w", err)
	}

	const q = `
		INSERT INTO kv_slots (slot_key, slot_value)
		VALUES (@key, @value)
		ON CONFLICT (slot_key) DO UPDATE
		SET slot_value = EXCLUDED.slot_value,
		    updated_at = CURRENT_TIMESTAMP`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "value": string(value)})
	if err != nil {
		return fmt.Errorf("repo.PostgresSlotRepo.Put: %w", err)
	}
	return nil
}
