package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kdimtricp/cinemente/internal/api"
	"github.com/kdimtricp/cinemente/internal/config"
	"github.com/kdimtricp/cinemente/internal/database"
	"github.com/kdimtricp/cinemente/internal/logging"
	"github.com/kdimtricp/cinemente/internal/recommend"
	"github.com/kdimtricp/cinemente/internal/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid configuration")
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if cfg.TMDb.APIKey == "" {
		logging.Fatal().Msg("TMDB_API_KEY is required to run the server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, database.Config{Path: cfg.Database.Path})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	client := search.NewTMDbClient(cfg.TMDb.APIKey,
		search.WithBaseURL(cfg.TMDb.BaseURL),
		search.WithLanguage(cfg.TMDb.Language),
		search.WithRateLimit(cfg.TMDb.RateLimit),
		search.WithHTTPClient(search.NewHTTPClient(cfg.TMDb.Timeout)),
	)

	genres, err := client.GetGenres(ctx)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load genres")
	}

	history := database.NewHistoryRepository(db)
	app := api.NewApp(genres, recommend.NewService(client, history), history)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           api.NewRouter(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("Server shutdown failed")
		}
	}()

	logging.Info().
		Str("port", cfg.Server.Port).
		Str("db", cfg.Database.Path).
		Str("language", cfg.TMDb.Language).
		Int("genres", len(genres)).
		Msg("Server starting")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal().Err(err).Msg("Server failed")
	}
}
