package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kdimtricp/cinemente/internal/config"
	"github.com/kdimtricp/cinemente/internal/database"
	"github.com/kdimtricp/cinemente/internal/logging"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil && !errors.Is(err, flag.ErrHelp) {
		logging.Fatal().Err(err).Msg("migrate failed")
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	flags := flag.NewFlagSet("migrate", flag.ContinueOnError)
	flags.SetOutput(out)
	var (
		dbPath = flags.String("db", cfg.Database.Path, "Path to the SQLite history database (defaults to DB_PATH)")
		status = flags.Bool("status", false, "Show migration status only")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	db, err := database.NewDB(database.Config{Path: *dbPath})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	migrator := database.NewMigrator(db.Conn())

	if !*status {
		fmt.Fprintf(out, "Running migrations on %s...\n", *dbPath)
		if err := migrator.Run(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		fmt.Fprintln(out, "Migrations completed successfully!")
		return nil
	}

	if err := migrator.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize migrator: %w", err)
	}

	applied, err := migrator.GetAppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	migrations, err := migrator.LoadMigrations()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	fmt.Fprintln(out, "Migration Status:")
	fmt.Fprintln(out, "=================")
	for _, m := range migrations {
		state := "pending"
		if applied[m.Version] {
			state = "applied"
		}
		fmt.Fprintf(out, "%s - %s [%s]\n", m.Version, m.Name, state)
	}
	return nil
}
