package entity

import (
	"errors"
	"fmt"
)

// Domain errors for the daily progress counter
var (
	ErrMissingMarker = errors.New("no last marker recorded")
	ErrEmptyInput    = errors.New("series is empty")
)

// InvalidMonthError is returned when a date's month has no grid column
type InvalidMonthError struct {
	Month int
}

func (e *InvalidMonthError) Error() string {
	return fmt.Sprintf("invalid month: %d", e.Month)
}
