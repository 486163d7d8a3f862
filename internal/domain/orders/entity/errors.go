package entity

import "fmt"

// FetchError is returned when the order-search API answers with a non-success status
type FetchError struct {
	Status     Status
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("searching orders %q: status %d, %s", e.Status, e.StatusCode, e.Body)
}
