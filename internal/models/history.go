package models

import "time"

type HistoryRecord struct {
	FilmID int       `json:"film_id"`
	Title  string    `json:"title"`
	SeenAt time.Time `json:"seen_at"`
}

func NewHistoryRecord(filmID int, title string) *HistoryRecord {
	return &HistoryRecord{
		FilmID: filmID,
		Title:  title,
		SeenAt: time.Now().UTC(),
	}
}
