package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

type Config struct {
	TMDb     TMDbConfig
	Database DatabaseConfig
	Server   ServerConfig
	Log      LogConfig
}

type TMDbConfig struct {
	APIKey    string        `env:"TMDB_API_KEY"`
	BaseURL   string        `env:"TMDB_BASE_URL" envDefault:"https://api.themoviedb.org/3"`
	Language  string        `env:"TMDB_LANGUAGE" envDefault:"en-US"`
	RateLimit float64       `env:"TMDB_RATE_LIMIT" envDefault:"40"`
	Timeout   time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
}

type DatabaseConfig struct {
	Path string `env:"DB_PATH" envDefault:"./movies_history.db"`
}

type ServerConfig struct {
	Port string `env:"PORT" envDefault:"8080"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load reads an optional .env file, then parses the environment.
// Variables already present in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values and normalizes the TMDb language tag.
// The API key is not required here: the terminal quiz prompts for it.
func (c *Config) Validate() error {
	tag, err := language.Parse(c.TMDb.Language)
	if err != nil {
		return fmt.Errorf("invalid TMDB_LANGUAGE %q: %w", c.TMDb.Language, err)
	}
	c.TMDb.Language = tag.String()

	if c.TMDb.RateLimit <= 0 {
		return fmt.Errorf("TMDB_RATE_LIMIT must be positive, got %v", c.TMDb.RateLimit)
	}
	if c.TMDb.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.TMDb.Timeout)
	}
	if c.TMDb.BaseURL == "" {
		return errors.New("TMDB_BASE_URL must not be empty")
	}
	if c.Database.Path == "" {
		return errors.New("DB_PATH must not be empty")
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.Log.Format)
	}

	return nil
}
