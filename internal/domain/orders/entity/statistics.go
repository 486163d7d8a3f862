package entity

import "encoding/json"

// CategoryStats represents order counts for a single category
type CategoryStats struct {
	Total    int `json:"total_count"`
	Excluded int `json:"excluded_count"`
}

// Included returns the number of orders not matching the exclusion predicate
func (s CategoryStats) Included() int {
	return s.Total - s.Excluded
}

// MarshalJSON adds the derived included_count
func (s CategoryStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Total    int `json:"total_count"`
		Excluded int `json:"excluded_count"`
		Included int `json:"included_count"`
	}{
		Total:    s.Total,
		Excluded: s.Excluded,
		Included: s.Included(),
	})
}

// Breakdown maps each category to its statistics
type Breakdown map[Category]CategoryStats
