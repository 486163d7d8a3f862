package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/vadim/order-metrics/internal/domain/progress/entity"
)

// HeaderRows is the number of header rows above day 1 in the daily grid
const HeaderRows = 1

// monthColumns maps a month to its column in the daily grid
var monthColumns = map[time.Month]string{
	time.January:   "B",
	time.February:  "C",
	time.March:     "D",
	time.April:     "E",
	time.May:       "F",
	time.June:      "G",
	time.July:      "H",
	time.August:    "I",
	time.September: "J",
	time.October:   "K",
	time.November:  "L",
	time.December:  "M",
}

// CountSinceLastMarker counts values appended after the last occurrence of marker.
// The series is ordered most-recent-last; if marker never appears the whole series is counted.
func CountSinceLastMarker(series []string, marker string) (int, error) {
	if marker == "" {
		return 0, entity.ErrMissingMarker
	}
	if len(series) == 0 {
		return 0, entity.ErrEmptyInput
	}

	count := 0
	for i := len(series) - 1; i >= 0; i-- {
		if series[i] == marker {
			break
		}
		count++
	}
	return count, nil
}

// CellForDate returns the grid cell for a date: the month selects the column, the day the row
func CellForDate(date time.Time) (string, error) {
	return cellFor(int(date.Month()), date.Day())
}

func cellFor(month, day int) (string, error) {
	column, ok := monthColumns[time.Month(month)]
	if !ok {
		return "", &entity.InvalidMonthError{Month: month}
	}
	return column + strconv.Itoa(day+HeaderRows), nil
}

// Compact drops blank values and keeps at most the last window values
func Compact(values []string, window int) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	if window > 0 && len(out) > window {
		out = out[len(out)-window:]
	}
	return out
}
