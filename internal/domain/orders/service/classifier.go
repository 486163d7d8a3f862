package service

import (
	"strings"

	"github.com/vadim/order-metrics/internal/domain/orders/entity"
)

// DefaultExclusionTerm separates one device family from the general counts
const DefaultExclusionTerm = "iphone"

// Predicate reports whether an order should be excluded from the included count
type Predicate func(order entity.Order) bool

// ContainsProduct matches orders with at least one product whose name contains term, case-insensitively
func ContainsProduct(term string) Predicate {
	term = strings.ToLower(term)
	return func(order entity.Order) bool {
		for _, p := range order.Details.Products {
			if p.Name != "" && strings.Contains(strings.ToLower(p.Name), term) {
				return true
			}
		}
		return false
	}
}

// Classify counts orders and how many of them match the exclusion predicate.
// Each order contributes at most once to the excluded count.
func Classify(orders []entity.Order, excluded Predicate) entity.CategoryStats {
	stats := entity.CategoryStats{Total: len(orders)}
	for _, o := range orders {
		if excluded(o) {
			stats.Excluded++
		}
	}
	return stats
}

// RowFilter selects spreadsheet rows counted as new and unclassified
type RowFilter struct {
	StateColumn    string
	ItemNameColumn string
	State          string
	ExclusionTerm  string
}

// DefaultRowFilter returns the filter matching the Orders sheet layout
func DefaultRowFilter() RowFilter {
	return RowFilter{
		StateColumn:    "r_state",
		ItemNameColumn: "r_item_name",
		State:          "NEW",
		ExclusionTerm:  DefaultExclusionTerm,
	}
}

// CountNewUnclassified counts rows in the filtered state whose item name does not contain the exclusion term.
// Rows missing either column never match.
func CountNewUnclassified(rows []entity.Row, f RowFilter) int {
	term := strings.ToLower(f.ExclusionTerm)

	count := 0
	for _, row := range rows {
		state, ok := row[f.StateColumn]
		if !ok || state != f.State {
			continue
		}
		name, ok := row[f.ItemNameColumn]
		if !ok || strings.Contains(strings.ToLower(name), term) {
			continue
		}
		count++
	}
	return count
}
