package dao

import (
	"context"
	"time"

	"github.com/vadim/order-metrics/internal/domain/metrics/entity"
)

// MetricsRepository defines the interface for metrics cache data access
type MetricsRepository interface {
	// Upsert writes all fields and the timestamp of the row with the given id, creating it if absent
	Upsert(ctx context.Context, id int64, fields entity.Fields, at time.Time) error

	// GetByID retrieves a row by id, nil if it does not exist
	GetByID(ctx context.Context, id int64) (*entity.Record, error)
}
