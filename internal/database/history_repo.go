package database

import (
	"context"
	"fmt"
	"time"

	"github.com/kdimtricp/cinemente/internal/models"
)

type HistoryRepository struct {
	db *DB
}

func NewHistoryRepository(db *DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record inserts the record unless the film is already in the history.
// It reports whether a row was inserted.
func (r *HistoryRepository) Record(ctx context.Context, record *models.HistoryRecord) (bool, error) {
	seenAt := record.SeenAt
	if seenAt.IsZero() {
		seenAt = time.Now().UTC()
	}

	result, err := r.db.conn.ExecContext(ctx,
		"INSERT OR IGNORE INTO history (film_id, title, seen_at) VALUES (?, ?, ?)",
		record.FilmID, record.Title, seenAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to record film %d: %w", record.FilmID, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return n == 1, nil
}

func (r *HistoryRepository) IsSeen(ctx context.Context, filmID int) (bool, error) {
	var count int
	err := r.db.conn.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM history WHERE film_id = ?", filmID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check history for film %d: %w", filmID, err)
	}
	return count > 0, nil
}

func (r *HistoryRepository) GetByFilmID(ctx context.Context, filmID int) (*models.HistoryRecord, error) {
	var rec models.HistoryRecord
	err := r.db.conn.QueryRowContext(ctx,
		"SELECT film_id, title, seen_at FROM history WHERE film_id = ?", filmID,
	).Scan(&rec.FilmID, &rec.Title, &rec.SeenAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get history record %d: %w", filmID, err)
	}
	return &rec, nil
}

// List returns the most recent records first. A limit <= 0 returns all.
func (r *HistoryRepository) List(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	query := "SELECT film_id, title, seen_at FROM history ORDER BY seen_at DESC, film_id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	records := []models.HistoryRecord{}
	for rows.Next() {
		var rec models.HistoryRecord
		if err := rows.Scan(&rec.FilmID, &rec.Title, &rec.SeenAt); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return records, nil
}

func (r *HistoryRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM history").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return count, nil
}
