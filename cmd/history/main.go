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
		logging.Fatal().Err(err).Msg("history failed")
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	flags := flag.NewFlagSet("history", flag.ContinueOnError)
	flags.SetOutput(out)
	var (
		dbPath = flags.String("db", cfg.Database.Path, "Path to the SQLite history database")
		limit  = flags.Int("n", 20, "Number of recent recommendations to show (0 for all)")
		filmID = flags.Int("film", 0, "Show when a single TMDb film id was recommended")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	db, err := database.Open(ctx, database.Config{Path: *dbPath})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := database.NewHistoryRepository(db)

	if *filmID != 0 {
		return showFilm(ctx, repo, *filmID, out)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Recommendation History")
	fmt.Fprintln(out, "======================")
	fmt.Fprintf(out, "Database: %s\n", *dbPath)
	fmt.Fprintf(out, "Total recommended: %d\n\n", count)

	if count == 0 {
		fmt.Fprintln(out, "No films recommended yet. Run cinemente to get one.")
		return nil
	}

	records, err := repo.List(ctx, *limit)
	if err != nil {
		return err
	}

	for _, r := range records {
		fmt.Fprintf(out, "%s  %-8d %s\n", r.SeenAt.Local().Format("2006-01-02 15:04"), r.FilmID, r.Title)
	}
	return nil
}

func showFilm(ctx context.Context, repo *database.HistoryRepository, filmID int, out io.Writer) error {
	seen, err := repo.IsSeen(ctx, filmID)
	if err != nil {
		return err
	}
	if !seen {
		fmt.Fprintf(out, "Film %d has not been recommended yet.\n", filmID)
		return nil
	}

	rec, err := repo.GetByFilmID(ctx, filmID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s was recommended on %s\n", rec.Title, rec.SeenAt.Local().Format("2006-01-02 15:04"))
	return nil
}
