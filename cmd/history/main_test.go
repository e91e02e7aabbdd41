package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kdimtricp/cinemente/internal/database"
	"github.com/kdimtricp/cinemente/internal/models"
)

// useDotEnv runs the test from a fresh directory whose .env holds contents,
// with DB_PATH cleared from the process environment.
func useDotEnv(t *testing.T, contents string) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DB_PATH", "")
	os.Unsetenv("DB_PATH")

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(contents), 0o600); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	return dir
}

func seedHistory(t *testing.T, path string, records ...*models.HistoryRecord) {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, database.Config{Path: path})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := database.NewHistoryRepository(db)
	for _, rec := range records {
		if _, err := repo.Record(ctx, rec); err != nil {
			t.Fatalf("Failed to seed history: %v", err)
		}
	}
}

func TestRun_ReadsDBPathFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "h.db")
	seedHistory(t, dbPath, models.NewHistoryRecord(949, "Heat"))

	useDotEnv(t, "DB_PATH="+dbPath+"\n")

	var out bytes.Buffer
	if err := run(context.Background(), nil, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Database: "+dbPath) {
		t.Errorf("Expected database path from .env, got:\n%s", got)
	}
	if !strings.Contains(got, "Total recommended: 1") || !strings.Contains(got, "Heat") {
		t.Errorf("Expected seeded record in output, got:\n%s", got)
	}
}

func TestRun_FlagOverridesDotEnv(t *testing.T) {
	dir := useDotEnv(t, "DB_PATH=from-env.db\n")
	flagPath := filepath.Join(dir, "from-flag.db")
	seedHistory(t, flagPath, models.NewHistoryRecord(8681, "Taken"))

	var out bytes.Buffer
	if err := run(context.Background(), []string{"-db", flagPath}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !strings.Contains(out.String(), "Taken") {
		t.Errorf("Expected flag database to be read, got:\n%s", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "from-env.db")); !os.IsNotExist(err) {
		t.Errorf("Expected .env database to stay untouched, stat err = %v", err)
	}
}

func TestRun_EmptyHistory(t *testing.T) {
	dir := useDotEnv(t, "")

	var out bytes.Buffer
	if err := run(context.Background(), []string{"-db", filepath.Join(dir, "empty.db")}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !strings.Contains(out.String(), "No films recommended yet.") {
		t.Errorf("Expected empty history message, got:\n%s", out.String())
	}
}

func TestRun_SingleFilm(t *testing.T) {
	dir := useDotEnv(t, "")
	dbPath := filepath.Join(dir, "h.db")
	seedHistory(t, dbPath, models.NewHistoryRecord(603, "The Matrix"))

	tests := []struct {
		name     string
		filmID   string
		expected string
	}{
		{"recommended", "603", "The Matrix was recommended on"},
		{"never recommended", "604", "Film 604 has not been recommended yet."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(context.Background(), []string{"-db", dbPath, "-film", tt.filmID}, &out); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if !strings.Contains(out.String(), tt.expected) {
				t.Errorf("Expected %q, got:\n%s", tt.expected, out.String())
			}
		})
	}
}
