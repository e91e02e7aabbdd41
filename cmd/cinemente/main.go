package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kdimtricp/cinemente/internal/cli"
	"github.com/kdimtricp/cinemente/internal/config"
	"github.com/kdimtricp/cinemente/internal/database"
	"github.com/kdimtricp/cinemente/internal/logging"
	"github.com/kdimtricp/cinemente/internal/recommend"
	"github.com/kdimtricp/cinemente/internal/search"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("cinemente failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stdin := bufio.NewReader(os.Stdin)

	apiKey := cfg.TMDb.APIKey
	if apiKey == "" {
		apiKey, err = cli.PromptAPIKey(stdin, os.Stdout)
		if err != nil {
			return err
		}
	}

	db, err := database.Open(ctx, database.Config{Path: cfg.Database.Path})
	if err != nil {
		return fmt.Errorf("failed to initialize history store: %w", err)
	}
	defer db.Close()

	client := search.NewTMDbClient(apiKey,
		search.WithBaseURL(cfg.TMDb.BaseURL),
		search.WithLanguage(cfg.TMDb.Language),
		search.WithRateLimit(cfg.TMDb.RateLimit),
		search.WithHTTPClient(search.NewHTTPClient(cfg.TMDb.Timeout)),
	)

	genres, err := client.GetGenres(ctx)
	if err != nil {
		return fmt.Errorf("unable to load genres: %w", err)
	}
	if len(genres) == 0 {
		return errors.New("unable to load genres: TMDb returned an empty list")
	}

	logging.Debug().Int("genres", len(genres)).Str("db", db.Path()).Msg("quiz ready")

	service := recommend.NewService(client, database.NewHistoryRepository(db))
	runner := cli.NewRunner(stdin, os.Stdout, genres, service)

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
