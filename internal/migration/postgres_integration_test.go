package migration

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"testing/fstest"

	_ "github.com/lib/pq"
)

// Set POSTGRES_TEST_URL to run, e.g.
// POSTGRES_TEST_URL="postgres://pact@localhost:5432/pact_test?sslmode=disable"
func setupPostgresTestDB(t *testing.T) *sql.DB {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open postgres database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping postgres database: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DROP TABLE IF EXISTS schema_version")
		db.Exec("DROP TABLE IF EXISTS test_state")
		db.Close()
	})
	return db
}

func TestPostgresApplyMigrations(t *testing.T) {
	ctx := context.Background()
	db := setupPostgresTestDB(t)

	runner, err := NewRunner(db, fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE test_state (key TEXT PRIMARY KEY, value TEXT NOT NULL);")},
	}, DriverPostgres)
	if err != nil {
		t.Fatalf("failed to create migration runner: %v", err)
	}

	count, err := runner.ApplyMigrations(ctx, nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 migration applied, got %d", count)
	}

	if err := runner.SetVersion(ctx, 1); err != nil {
		t.Fatalf("SetVersion with $1 placeholder failed: %v", err)
	}
	version, err := runner.GetCurrentVersion(ctx)
	if err != nil || version != 1 {
		t.Errorf("GetCurrentVersion() = %d, %v; want 1", version, err)
	}
}
