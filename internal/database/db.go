package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	conn *sql.DB
	path string
}

type Config struct {
	Path string
}

func NewDB(config Config) (*DB, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("database path not configured")
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", config.Path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn, path: config.Path}, nil
}

// Open connects to the database and applies pending migrations.
func Open(ctx context.Context, config Config) (*DB, error) {
	db, err := NewDB(config)
	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func (db *DB) RunMigrations(ctx context.Context) error {
	return NewMigrator(db.conn).Run(ctx)
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Conn() *sql.DB {
	return db.conn
}

func (db *DB) Path() string {
	return db.path
}
