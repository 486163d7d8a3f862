package policy

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/vadim/order-metrics/internal/domain/metrics/entity"
	"github.com/vadim/order-metrics/internal/domain/metrics/service"
	orderentity "github.com/vadim/order-metrics/internal/domain/orders/entity"
)

// OrderClassifier computes order breakdowns and the new sheet order count
type OrderClassifier interface {
	FetchAndClassify(ctx context.Context) (orderentity.Breakdown, error)
	CountNew(ctx context.Context) (int, error)
}

// ProgressCounter counts series values recorded since the last marker
type ProgressCounter interface {
	CountDone(ctx context.Context) (int, error)
}

// SnapshotArchiver stores refresh snapshots outside the database
type SnapshotArchiver interface {
	Archive(ctx context.Context, at time.Time, snapshot interface{}) (string, error)
}

// Policy orchestrates the dashboard metrics use-cases
type Policy struct {
	svc      *service.Service
	orders   OrderClassifier
	progress ProgressCounter
	archive  SnapshotArchiver
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a new metrics policy. archive may be nil.
func New(svc *service.Service, orders OrderClassifier, progress ProgressCounter, archive SnapshotArchiver, logger *slog.Logger) *Policy {
	return &Policy{
		svc:      svc,
		orders:   orders,
		progress: progress,
		archive:  archive,
		logger:   logger,
		now:      time.Now,
	}
}

// Refresh recomputes all dashboard metrics and overwrites the cached record
func (p *Policy) Refresh(ctx context.Context) (*entity.Snapshot, error) {
	breakdown, err := p.orders.FetchAndClassify(ctx)
	if err != nil {
		return nil, err
	}

	newCount, err := p.orders.CountNew(ctx)
	if err != nil {
		return nil, err
	}

	doneCount, err := p.progress.CountDone(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &entity.Snapshot{
		GeneratedAt: p.now().UTC(),
		Breakdown:   breakdown,
		NewCount:    newCount,
		DoneCount:   doneCount,
		Fields:      BuildFields(breakdown, newCount, doneCount),
	}

	// an unsaved record is logged by the service, the request still succeeds
	snapshot.Saved = p.svc.UpsertSingleton(ctx, snapshot.Fields)

	p.logger.Info("metrics refreshed",
		"realizowane", snapshot.Fields.Realizowane,
		"oczekuje", snapshot.Fields.Oczekuje,
		"combined", snapshot.Fields.Combined,
		"nie_dodane", snapshot.Fields.NieDodane,
		"wykonane", snapshot.Fields.Wykonane,
		"saved", snapshot.Saved,
	)

	if p.archive != nil {
		key, err := p.archive.Archive(ctx, snapshot.GeneratedAt, snapshot)
		if err != nil {
			p.logger.Warn("failed to archive metrics snapshot", "error", err)
		} else {
			p.logger.Debug("metrics snapshot archived", "key", key)
		}
	}

	return snapshot, nil
}

// Current returns the cached metrics record, nil if none was stored yet
func (p *Policy) Current(ctx context.Context) *entity.Record {
	return p.svc.GetSingleton(ctx)
}

// BuildFields renders the dashboard values. The combined value adds new sheet orders
// to the included orders of both statuses.
func BuildFields(breakdown orderentity.Breakdown, newCount, doneCount int) entity.Fields {
	combined := breakdown[orderentity.CategoryWszystko].Included() + newCount

	return entity.Fields{
		Realizowane: strconv.Itoa(breakdown[orderentity.CategoryRealizowane].Included()),
		Oczekuje:    strconv.Itoa(breakdown[orderentity.CategoryOczekuje].Included()),
		Combined:    strconv.Itoa(combined),
		NieDodane:   strconv.Itoa(newCount),
		Wykonane:    strconv.Itoa(doneCount),
	}
}
