package service

import (
	"testing"

	"github.com/vadim/order-metrics/internal/domain/orders/entity"
)

func order(products ...string) entity.Order {
	o := entity.Order{}
	for _, name := range products {
		o.Details.Products = append(o.Details.Products, entity.Product{Name: name})
	}
	return o
}

func TestClassify(t *testing.T) {
	iphone := ContainsProduct(DefaultExclusionTerm)

	tests := []struct {
		name     string
		orders   []entity.Order
		total    int
		excluded int
	}{
		{name: "empty input", orders: nil, total: 0, excluded: 0},
		{name: "order without products", orders: []entity.Order{order()}, total: 1, excluded: 0},
		{name: "case-insensitive match", orders: []entity.Order{order("iPhone 12")}, total: 1, excluded: 1},
		{name: "counted once per order", orders: []entity.Order{order("IPHONE 13", "iphone case", "Pixel")}, total: 1, excluded: 1},
		{name: "product with empty name", orders: []entity.Order{order("")}, total: 1, excluded: 0},
		{
			name:     "mixed",
			orders:   []entity.Order{order("Galaxy S21"), order("Apple iPhone 14 Pro"), order("MacBook"), order()},
			total:    4,
			excluded: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := Classify(tt.orders, iphone)

			if stats.Total != tt.total {
				t.Errorf("Expected total %d, got %d", tt.total, stats.Total)
			}
			if stats.Excluded != tt.excluded {
				t.Errorf("Expected excluded %d, got %d", tt.excluded, stats.Excluded)
			}
			if stats.Included()+stats.Excluded != stats.Total || stats.Total != len(tt.orders) {
				t.Errorf("included+excluded must equal total and len(orders): %+v", stats)
			}
		})
	}
}

func TestClassifyEmptyIsZero(t *testing.T) {
	stats := Classify([]entity.Order{}, ContainsProduct("iphone"))
	if stats != (entity.CategoryStats{}) || stats.Included() != 0 {
		t.Errorf("Expected zero stats, got %+v", stats)
	}
}

func TestCountNewUnclassified(t *testing.T) {
	rows := []entity.Row{
		{"r_state": "NEW", "r_item_name": "Samsung Galaxy"},
		{"r_state": "NEW", "r_item_name": "iPhone 11"},
		{"r_state": "new", "r_item_name": "Pixel 7"},
		{"r_state": "SHIPPED", "r_item_name": "Pixel 7"},
		{"r_state": "NEW"},
		{"r_item_name": "Pixel 7"},
		{},
		{"r_state": "NEW", "r_item_name": ""},
	}

	got := CountNewUnclassified(rows, DefaultRowFilter())
	if got != 2 {
		t.Errorf("Expected 2 matching rows, got %d", got)
	}
}

func TestCountNewUnclassifiedCustomColumns(t *testing.T) {
	f := RowFilter{StateColumn: "state", ItemNameColumn: "item_name", State: "OPEN", ExclusionTerm: "IPAD"}
	rows := []entity.Row{
		{"state": "OPEN", "item_name": "iPad Air"},
		{"state": "OPEN", "item_name": "Kindle"},
	}

	if got := CountNewUnclassified(rows, f); got != 1 {
		t.Errorf("Expected 1 matching row, got %d", got)
	}
}
