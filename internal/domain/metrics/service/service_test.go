package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/vadim/order-metrics/internal/domain/metrics/entity"
)

// memoryRepository keeps rows in a map, mirroring upsert-by-id semantics
type memoryRepository struct {
	rows      map[int64]entity.Record
	upsertErr error
	getErr    error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: map[int64]entity.Record{}}
}

func (m *memoryRepository) Upsert(ctx context.Context, id int64, fields entity.Fields, at time.Time) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.rows[id] = entity.Record{ID: id, CreatedAt: &at, Fields: fields}
	return nil
}

func (m *memoryRepository) GetByID(ctx context.Context, id int64) (*entity.Record, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	rec, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func newTestService(repo *memoryRepository) *Service {
	s := New(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time {
		return time.Date(2025, time.March, 5, 15, 4, 0, 0, time.FixedZone("CET", 3600))
	}
	return s
}

func TestUpsertSingletonTwice(t *testing.T) {
	repo := newMemoryRepository()
	s := newTestService(repo)

	first := entity.Fields{Realizowane: "1", Oczekuje: "2", Combined: "3", NieDodane: "4", Wykonane: "5"}
	second := entity.Fields{Realizowane: "6", Oczekuje: "7", Combined: "8", NieDodane: "9", Wykonane: "10"}

	if !s.UpsertSingleton(context.Background(), first) {
		t.Fatal("Expected first upsert to succeed")
	}
	if !s.UpsertSingleton(context.Background(), second) {
		t.Fatal("Expected second upsert to succeed")
	}

	if len(repo.rows) != 1 {
		t.Fatalf("Expected exactly one row, got %d", len(repo.rows))
	}
	rec := s.GetSingleton(context.Background())
	if rec == nil {
		t.Fatal("Expected a record after upsert")
	}
	if rec.ID != entity.SingletonID || rec.Fields != second {
		t.Errorf("Expected second call's fields under id 1, got %+v", rec)
	}
	if rec.CreatedAt == nil {
		t.Fatal("Expected created_at to be set")
	}
	if rec.CreatedAt.Location() != time.UTC || rec.CreatedAt.Hour() != 14 {
		t.Errorf("Expected UTC timestamp 14:04, got %s", rec.CreatedAt)
	}
}

func TestUpsertSingletonFailure(t *testing.T) {
	repo := newMemoryRepository()
	repo.upsertErr = errors.New("duplicate key value violates unique constraint")

	if newTestService(repo).UpsertSingleton(context.Background(), entity.Fields{}) {
		t.Error("Expected upsert failure to be reported as false")
	}
}

func TestGetSingletonAbsent(t *testing.T) {
	s := newTestService(newMemoryRepository())
	if rec := s.GetSingleton(context.Background()); rec != nil {
		t.Errorf("Expected nil on empty table, got %+v", rec)
	}
}

func TestGetSingletonReadError(t *testing.T) {
	repo := newMemoryRepository()
	repo.getErr = errors.New("connection refused")

	if rec := newTestService(repo).GetSingleton(context.Background()); rec != nil {
		t.Errorf("Expected read errors to be reported as absent, got %+v", rec)
	}
}
