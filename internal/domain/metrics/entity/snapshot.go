package entity

import (
	"time"

	orderentity "github.com/vadim/order-metrics/internal/domain/orders/entity"
)

// Snapshot captures everything computed by one refresh
type Snapshot struct {
	GeneratedAt time.Time             `json:"generated_at"`
	Breakdown   orderentity.Breakdown `json:"breakdown"`
	NewCount    int                   `json:"new_count"`
	DoneCount   int                   `json:"done_count"`
	Fields      Fields                `json:"fields"`
	Saved       bool                  `json:"saved"`
}
