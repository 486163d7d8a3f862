package policy

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/vadim/order-metrics/internal/domain/metrics/entity"
	"github.com/vadim/order-metrics/internal/domain/metrics/service"
	orderentity "github.com/vadim/order-metrics/internal/domain/orders/entity"
)

type mockOrders struct {
	breakdown orderentity.Breakdown
	fetchErr  error
	newCount  int
	newErr    error
}

func (m *mockOrders) FetchAndClassify(ctx context.Context) (orderentity.Breakdown, error) {
	return m.breakdown, m.fetchErr
}

func (m *mockOrders) CountNew(ctx context.Context) (int, error) {
	return m.newCount, m.newErr
}

type mockProgress struct {
	done int
	err  error
}

func (m *mockProgress) CountDone(ctx context.Context) (int, error) {
	return m.done, m.err
}

type mockRepository struct {
	record    *entity.Record
	upserts   int
	upsertErr error
}

func (m *mockRepository) Upsert(ctx context.Context, id int64, fields entity.Fields, at time.Time) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserts++
	m.record = &entity.Record{ID: id, CreatedAt: &at, Fields: fields}
	return nil
}

func (m *mockRepository) GetByID(ctx context.Context, id int64) (*entity.Record, error) {
	return m.record, nil
}

type mockArchiver struct {
	archived []interface{}
	err      error
}

func (m *mockArchiver) Archive(ctx context.Context, at time.Time, snapshot interface{}) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.archived = append(m.archived, snapshot)
	return "metrics/key.json", nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleBreakdown() orderentity.Breakdown {
	return orderentity.Breakdown{
		orderentity.CategoryRealizowane: {Total: 5, Excluded: 2},
		orderentity.CategoryOczekuje:    {Total: 4, Excluded: 1},
		orderentity.CategoryWszystko:    {Total: 9, Excluded: 3},
	}
}

func TestRefresh(t *testing.T) {
	repo := &mockRepository{}
	archive := &mockArchiver{}
	p := New(
		service.New(repo, discardLogger()),
		&mockOrders{breakdown: sampleBreakdown(), newCount: 7},
		&mockProgress{done: 11},
		archive,
		discardLogger(),
	)

	snapshot, err := p.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	want := entity.Fields{Realizowane: "3", Oczekuje: "3", Combined: "13", NieDodane: "7", Wykonane: "11"}
	if snapshot.Fields != want {
		t.Errorf("Expected fields %+v, got %+v", want, snapshot.Fields)
	}
	if !snapshot.Saved || repo.upserts != 1 || repo.record.Fields != want {
		t.Errorf("Expected record to be saved, got %+v", repo.record)
	}
	if len(archive.archived) != 1 {
		t.Errorf("Expected one archived snapshot, got %d", len(archive.archived))
	}
	if rec := p.Current(context.Background()); rec == nil || rec.Fields != want {
		t.Errorf("Expected current record to match, got %+v", rec)
	}
}

func TestRefreshIPhoneOnly(t *testing.T) {
	breakdown := orderentity.Breakdown{
		orderentity.CategoryRealizowane: {Total: 1, Excluded: 1},
		orderentity.CategoryOczekuje:    {},
		orderentity.CategoryWszystko:    {Total: 1, Excluded: 1},
	}

	fields := BuildFields(breakdown, 0, 0)
	if fields.Realizowane != "0" || fields.Combined != "0" {
		t.Errorf("Expected zero included orders, got %+v", fields)
	}
}

func TestRefreshFailsWithoutSaving(t *testing.T) {
	fetchErr := &orderentity.FetchError{Status: orderentity.StatusOnOrder, StatusCode: 502, Body: "bad gateway"}

	tests := []struct {
		name     string
		orders   *mockOrders
		progress *mockProgress
		wantErr  error
	}{
		{name: "order search fails", orders: &mockOrders{fetchErr: fetchErr}, progress: &mockProgress{}, wantErr: fetchErr},
		{name: "sheet read fails", orders: &mockOrders{breakdown: sampleBreakdown(), newErr: errSheet}, progress: &mockProgress{}, wantErr: errSheet},
		{name: "progress count fails", orders: &mockOrders{breakdown: sampleBreakdown()}, progress: &mockProgress{err: errSheet}, wantErr: errSheet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{}
			p := New(service.New(repo, discardLogger()), tt.orders, tt.progress, nil, discardLogger())

			_, err := p.Refresh(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if repo.upserts != 0 {
				t.Errorf("Expected nothing saved, got %d upserts", repo.upserts)
			}
		})
	}
}

var errSheet = errors.New("sheet unavailable")

func TestRefreshToleratesStoreAndArchiveFailures(t *testing.T) {
	repo := &mockRepository{upsertErr: errors.New("connection reset")}
	p := New(
		service.New(repo, discardLogger()),
		&mockOrders{breakdown: sampleBreakdown()},
		&mockProgress{},
		&mockArchiver{err: errors.New("bucket missing")},
		discardLogger(),
	)

	snapshot, err := p.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Expected refresh to succeed, got %v", err)
	}
	if snapshot.Saved {
		t.Error("Expected snapshot to be marked unsaved")
	}
}
