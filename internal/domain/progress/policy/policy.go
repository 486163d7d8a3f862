package policy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vadim/order-metrics/internal/domain/progress/entity"
	"github.com/vadim/order-metrics/internal/domain/progress/service"
)

// SeriesSource reads a whole column of the series sheet
type SeriesSource interface {
	ColumnValues(ctx context.Context, column string) ([]string, error)
}

// CellStore reads and writes single cells of a sheet
type CellStore interface {
	ReadCell(ctx context.Context, cell string) (string, error)
	WriteCell(ctx context.Context, cell string, value interface{}) error
}

// Layout describes where the series, the marker and the daily grid live
type Layout struct {
	SeriesColumn string
	SeriesWindow int
	MarkerCell   string
	Location     *time.Location
}

// DefaultLayout returns the layout of the M2 and Config sheets
func DefaultLayout() Layout {
	return Layout{
		SeriesColumn: "C",
		SeriesWindow: 500,
		MarkerCell:   "A7",
		Location:     time.UTC,
	}
}

// Policy orchestrates the daily progress use-cases
type Policy struct {
	series SeriesSource
	config CellStore
	output CellStore
	layout Layout
	logger *slog.Logger
}

// New creates a new progress policy
func New(series SeriesSource, config, output CellStore, layout Layout, logger *slog.Logger) *Policy {
	if layout.Location == nil {
		layout.Location = time.UTC
	}
	return &Policy{
		series: series,
		config: config,
		output: output,
		layout: layout,
		logger: logger,
	}
}

// ReadSeries returns the non-blank tail of the series column
func (p *Policy) ReadSeries(ctx context.Context) ([]string, error) {
	values, err := p.series.ColumnValues(ctx, p.layout.SeriesColumn)
	if err != nil {
		return nil, fmt.Errorf("reading series column %s: %w", p.layout.SeriesColumn, err)
	}
	return service.Compact(values, p.layout.SeriesWindow), nil
}

// ReadMarker returns the stored marker, empty if none was recorded
func (p *Policy) ReadMarker(ctx context.Context) (string, error) {
	marker, err := p.config.ReadCell(ctx, p.layout.MarkerCell)
	if err != nil {
		return "", fmt.Errorf("reading marker cell %s: %w", p.layout.MarkerCell, err)
	}
	return marker, nil
}

// AdvanceMarker stores the last series value as the new marker.
// Read-then-advance is not atomic; callers must not run it concurrently.
func (p *Policy) AdvanceMarker(ctx context.Context, series []string) (string, error) {
	if len(series) == 0 {
		return "", entity.ErrEmptyInput
	}

	last := series[len(series)-1]
	if err := p.config.WriteCell(ctx, p.layout.MarkerCell, last); err != nil {
		return "", fmt.Errorf("writing marker cell %s: %w", p.layout.MarkerCell, err)
	}

	p.logger.Info("marker advanced", "cell", p.layout.MarkerCell, "marker", last)
	return last, nil
}

// CountDone counts series values appended since the stored marker
func (p *Policy) CountDone(ctx context.Context) (int, error) {
	marker, err := p.ReadMarker(ctx)
	if err != nil {
		return 0, err
	}
	series, err := p.ReadSeries(ctx)
	if err != nil {
		return 0, err
	}
	return service.CountSinceLastMarker(series, marker)
}

// RecordDaily writes the count since marker into the grid cell for date, then advances the marker
func (p *Policy) RecordDaily(ctx context.Context, series []string, marker string, date time.Time) (*entity.DailyResult, error) {
	cell, err := service.CellForDate(date)
	if err != nil {
		return nil, err
	}

	count, err := service.CountSinceLastMarker(series, marker)
	if err != nil {
		return nil, err
	}

	if err := p.output.WriteCell(ctx, cell, count); err != nil {
		return nil, fmt.Errorf("writing daily count to %s: %w", cell, err)
	}

	p.logger.Info("daily count saved", "cell", cell, "count", count, "date", date.Format("02.01.2006"))

	next, err := p.AdvanceMarker(ctx, series)
	if err != nil {
		return nil, err
	}

	return &entity.DailyResult{
		Cell:   cell,
		Count:  count,
		Date:   date,
		Marker: next,
	}, nil
}

// SaveDaily reads the series and marker and records the count for now in the configured timezone
func (p *Policy) SaveDaily(ctx context.Context, now time.Time) (*entity.DailyResult, error) {
	marker, err := p.ReadMarker(ctx)
	if err != nil {
		return nil, err
	}
	series, err := p.ReadSeries(ctx)
	if err != nil {
		return nil, err
	}
	return p.RecordDaily(ctx, series, marker, now.In(p.layout.Location))
}
