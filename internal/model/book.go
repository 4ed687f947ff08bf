package model

import (
	"encoding/json"
	"time"
)

const BookDateFormat = "2006-01-02"

type Book struct {
	ID            int64     `db:"id"`
	Title         string    `db:"title"`
	Author        string    `db:"author"`
	Description   string    `db:"description"`
	PublishedDate time.Time `db:"published_date"`
	CreatedAt     time.Time `db:"created_at"`
}

// MarshalJSON renders published_date as a plain calendar date.
func (b Book) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID            int64  `json:"id"`
		Title         string `json:"title"`
		Author        string `json:"author"`
		Description   string `json:"description"`
		PublishedDate string `json:"published_date"`
	}{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Description:   b.Description,
		PublishedDate: b.PublishedDate.Format(BookDateFormat),
	})
}

type BookParams struct {
	Title         string
	Author        string
	Description   string
	PublishedDate time.Time
}
