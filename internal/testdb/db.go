//go:build integration

package testdb

import (
	"context"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/ianchen9527/coach-vocabulary-backend/internal/platform/postgres"
)

// TestTimeout bounds connection and migration setup.
const TestTimeout = 30 * time.Second

var (
	migrateOnce sync.Once
	migrateErr  error
)

// GetTestDBWithT connects to the test database, applies the embedded
// migrations once per process and closes the connection when t finishes.
// The test is skipped when no database URL is configured.
func GetTestDBWithT(t *testing.T) *sqlx.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("DATABASE_URL or COACH_TEST_DB_URL not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "pgx", dbURL)
	require.NoError(t, err, "failed to connect to %s", maskDatabaseURL(dbURL))

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	SetupTestDatabaseSchema(t, db)

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close database connection: %v", err)
		}
	})
	return db
}

// SetupTestDatabaseSchema applies all migrations. Later calls reuse the
// outcome of the first.
func SetupTestDatabaseSchema(t *testing.T, db *sqlx.DB) {
	t.Helper()

	migrateOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
		defer cancel()
		migrateErr = postgres.RunMigrations(ctx, db.DB, "up", nil)
	})
	require.NoError(t, migrateErr, "failed to apply migrations")
}
