package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/kdimtricp/cinemente/internal/logging"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

type Migration struct {
	Version string
	Name    string
	SQL     string
}

type Migrator struct {
	db   *sql.DB
	fsys fs.FS
	dir  string
}

func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{
		db:   db,
		fsys: embeddedMigrations,
		dir:  "migrations",
	}
}

// NewMigratorFS reads migrations from dir inside fsys instead of the
// embedded set.
func NewMigratorFS(db *sql.DB, fsys fs.FS, dir string) *Migrator {
	return &Migrator{db: db, fsys: fsys, dir: dir}
}

// Initialize creates the migrations tracking table if it doesn't exist
func (m *Migrator) Initialize(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := m.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	return nil
}

// GetAppliedMigrations returns a list of already applied migration versions
func (m *Migrator) GetAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	applied := make(map[string]bool)

	rows, err := m.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// LoadMigrations loads all migration files, sorted by version
func (m *Migrator) LoadMigrations() ([]Migration, error) {
	entries, err := fs.ReadDir(m.fsys, m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		// "001_create_history.sql" -> "001"
		version, _, ok := strings.Cut(entry.Name(), "_")
		if !ok {
			logging.Warn().Str("file", entry.Name()).Msg("skipping invalid migration filename")
			continue
		}

		content, err := fs.ReadFile(m.fsys, path.Join(m.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    entry.Name(),
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// ApplyMigration runs a single migration in a transaction
func (m *Migrator) ApplyMigration(ctx context.Context, migration Migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", migration.Name, err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version) VALUES (?)",
		migration.Version,
	); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", migration.Name, err)
	}

	logging.Info().Str("migration", migration.Name).Msg("applied migration")
	return nil
}

// Run executes all pending migrations
func (m *Migrator) Run(ctx context.Context) error {
	if err := m.Initialize(ctx); err != nil {
		return err
	}

	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}

	migrations, err := m.LoadMigrations()
	if err != nil {
		return err
	}

	pendingCount := 0
	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}

		if err := m.ApplyMigration(ctx, migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		pendingCount++
	}

	if pendingCount == 0 {
		logging.Debug().Msg("no pending migrations")
	} else {
		logging.Info().Int("count", pendingCount).Msg("applied migrations")
	}

	return nil
}
