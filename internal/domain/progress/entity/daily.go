package entity

import "time"

// DailyResult describes a count written to the daily grid
type DailyResult struct {
	Cell   string    `json:"cell"`
	Count  int       `json:"count"`
	Date   time.Time `json:"date"`
	Marker string    `json:"marker"` // marker after advancing
}
