package testutils

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/platform/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// PostgresURLEnv names the variable that enables the PostgreSQL-backed tests.
const PostgresURLEnv = "TASKBOARD_TEST_DATABASE_URL"

// OpenTestDB opens a fresh SQLite database in the test's temporary directory
// and applies all migrations. Every call yields an independent database, so
// tests using it may run in parallel. The database is closed on cleanup.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := database.OpenSQLite(ctx, path, nil)
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() { AssertCloseNoError(t, db) })

	err = database.Migrate(ctx, db, database.DialectSQLite, database.CommandUp, nil)
	require.NoError(t, err, "Failed to apply migrations")

	return db
}

// OpenPostgresTestDB connects to the PostgreSQL database named by
// TASKBOARD_TEST_DATABASE_URL and brings its schema up to date. The test is
// skipped when the variable is unset. The database is shared, so callers
// should isolate their work with WithTx.
func OpenPostgresTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv(PostgresURLEnv)
	if url == "" {
		t.Skipf("%s not set, skipping PostgreSQL test", PostgresURLEnv)
	}

	ctx := context.Background()
	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "Failed to open PostgreSQL connection")
	t.Cleanup(func() { AssertCloseNoError(t, db) })
	require.NoError(t, db.PingContext(ctx), "PostgreSQL is not reachable")

	err = database.Migrate(ctx, db, database.DialectPostgres, database.CommandUp, nil)
	require.NoError(t, err, "Failed to apply migrations")

	return db
}

// WithTx runs fn inside a transaction that is rolled back afterwards, so
// nothing fn writes outlives the test.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "Failed to begin transaction")
	defer AssertRollbackNoError(t, tx)

	fn(t, tx)
}

// AssertCloseNoError ensures that the Close() method on the provided closer
// executes without error. It uses assert.NoError to allow subsequent defers
// to run even if this one fails.
func AssertCloseNoError(t *testing.T, closer io.Closer) {
	t.Helper()
	if closer == nil {
		return
	}
	err := closer.Close()
	assert.NoError(t, err, "Deferred Close() failed for %T", closer)
}

// AssertRollbackNoError rolls back tx, tolerating sql.ErrTxDone for a
// transaction that was already committed or rolled back.
func AssertRollbackNoError(t *testing.T, tx *sql.Tx) {
	t.Helper()
	if tx == nil {
		return
	}
	err := tx.Rollback()
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		assert.NoError(t, err, "Failed to rollback transaction")
	}
}
