package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pressly/goose/v3"

	"github.com/pkordes/tourist-guide/internal/repo"
	"github.com/pkordes/tourist-guide/testutil"
)

// TestMain runs before any test in the repo_test package.
// When a Postgres test database is configured it applies all pending
// migrations so the Postgres tests never need to think about schema state.
// The SQLite and file tests need no setup and always run.
func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		os.Exit(m.Run())
	}

	// goose needs database/sql, not a pgx pool. TestMain has no *testing.T,
	// so the panicking helper is used instead of testutil.NewSQLDB.
	db := testutil.MustOpenSQLDB(os.Getenv("TEST_DATABASE_URL"))

	if err := repo.Migrate(context.Background(), db, goose.DialectPostgres); err != nil {
		db.Close()
		log.Fatalf("TestMain: %v", err)
	}
	db.Close()

	os.Exit(m.Run())
}
