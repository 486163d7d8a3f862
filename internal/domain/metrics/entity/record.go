package entity

import "time"

// SingletonID is the id of the one cached metrics row
const SingletonID int64 = 1

// Fields holds the dashboard values, already rendered as strings
type Fields struct {
	Realizowane string `json:"realizowane"`
	Oczekuje    string `json:"oczekuje"`
	Combined    string `json:"combined"`
	NieDodane   string `json:"nie_dodane"`
	Wykonane    string `json:"wykonane"`
}

// Record is the persisted metrics row
type Record struct {
	ID        int64      `json:"id"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	Fields
}
