package database

import (
	"context"
	"path/filepath"
	"testing"
)

// NewTestDB opens a migrated SQLite database in a temporary directory.
// The database is closed when the test finishes.
func NewTestDB(t testing.TB) *DB {
	t.Helper()

	db, err := Open(context.Background(), Config{
		Path: filepath.Join(t.TempDir(), "history_test.db"),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
