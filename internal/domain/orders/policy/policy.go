package policy

import (
	"context"
	"fmt"

	"github.com/vadim/order-metrics/internal/domain/orders/entity"
	"github.com/vadim/order-metrics/internal/domain/orders/service"
)

// OrderSearcher defines the interface for the order-search API
type OrderSearcher interface {
	SearchOrders(ctx context.Context, status entity.Status) ([]entity.Order, error)
}

// RecordSource provides header-keyed rows of the orders sheet
type RecordSource interface {
	Records(ctx context.Context) ([]entity.Row, error)
}

// Policy orchestrates order classification use-cases
type Policy struct {
	searcher OrderSearcher
	records  RecordSource
	excluded service.Predicate
	filter   service.RowFilter
}

// New creates a new order policy
func New(searcher OrderSearcher, records RecordSource, filter service.RowFilter) *Policy {
	return &Policy{
		searcher: searcher,
		records:  records,
		excluded: service.ContainsProduct(filter.ExclusionTerm),
		filter:   filter,
	}
}

// FetchAndClassify searches orders in progress and awaiting dispatch and classifies each category.
// The combined category is the plain concatenation of both lists, so an order returned by both
// searches is counted twice.
func (p *Policy) FetchAndClassify(ctx context.Context) (entity.Breakdown, error) {
	realizowane, err := p.searcher.SearchOrders(ctx, entity.StatusOnOrder)
	if err != nil {
		return nil, fmt.Errorf("fetching %s orders: %w", entity.CategoryRealizowane, err)
	}

	oczekuje, err := p.searcher.SearchOrders(ctx, entity.StatusWaitForDispatch)
	if err != nil {
		return nil, fmt.Errorf("fetching %s orders: %w", entity.CategoryOczekuje, err)
	}

	wszystko := make([]entity.Order, 0, len(realizowane)+len(oczekuje))
	wszystko = append(wszystko, realizowane...)
	wszystko = append(wszystko, oczekuje...)

	return entity.Breakdown{
		entity.CategoryRealizowane: service.Classify(realizowane, p.excluded),
		entity.CategoryOczekuje:    service.Classify(oczekuje, p.excluded),
		entity.CategoryWszystko:    service.Classify(wszystko, p.excluded),
	}, nil
}

// CountNew counts new sheet orders that are not excluded
func (p *Policy) CountNew(ctx context.Context) (int, error) {
	rows, err := p.records.Records(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading orders sheet: %w", err)
	}
	return service.CountNewUnclassified(rows, p.filter), nil
}
