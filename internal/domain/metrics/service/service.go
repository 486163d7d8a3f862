package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/vadim/order-metrics/internal/domain/metrics/dao"
	"github.com/vadim/order-metrics/internal/domain/metrics/entity"
)

// Service handles the single-row metrics cache
type Service struct {
	repo   dao.MetricsRepository
	logger *slog.Logger
	now    func() time.Time
}

// New creates a new metrics service
func New(repo dao.MetricsRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// UpsertSingleton overwrites the cached metrics, stamping them with the current UTC time.
// Failures are logged and reported as false.
func (s *Service) UpsertSingleton(ctx context.Context, fields entity.Fields) bool {
	if err := s.repo.Upsert(ctx, entity.SingletonID, fields, s.now().UTC()); err != nil {
		s.logger.Error("failed to update metrics record", "id", entity.SingletonID, "error", err)
		return false
	}
	return true
}

// GetSingleton returns the cached metrics, nil if absent or unreadable
func (s *Service) GetSingleton(ctx context.Context) *entity.Record {
	rec, err := s.repo.GetByID(ctx, entity.SingletonID)
	if err != nil {
		s.logger.Error("failed to read metrics record", "id", entity.SingletonID, "error", err)
		return nil
	}
	return rec
}
