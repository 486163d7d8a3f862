package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vadim/order-metrics/internal/domain/metrics/entity"
)

// MetricsPostgres implements MetricsRepository using PostgreSQL
type MetricsPostgres struct {
	pool  *pgxpool.Pool
	table string
}

// NewMetricsPostgres creates a new PostgreSQL metrics repository backed by the given table
func NewMetricsPostgres(pool *pgxpool.Pool, table string) *MetricsPostgres {
	return &MetricsPostgres{
		pool:  pool,
		table: pgx.Identifier{table}.Sanitize(),
	}
}

// EnsureSchema creates the metrics table if it does not exist
func (r *MetricsPostgres) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id          BIGINT PRIMARY KEY,
			created_at  TIMESTAMPTZ DEFAULT NOW(),
			realizowane TEXT,
			oczekuje    TEXT,
			combined    TEXT,
			nie_dodane  TEXT,
			wykonane    TEXT
		)
	`, r.table)

	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("creating metrics table: %w", err)
	}
	return nil
}

// Upsert writes the row in a single statement inside a short transaction
func (r *MetricsPostgres) Upsert(ctx context.Context, id int64, fields entity.Fields, at time.Time) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, created_at, realizowane, oczekuje, combined, nie_dodane, wykonane)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			created_at = EXCLUDED.created_at,
			realizowane = EXCLUDED.realizowane,
			oczekuje = EXCLUDED.oczekuje,
			combined = EXCLUDED.combined,
			nie_dodane = EXCLUDED.nie_dodane,
			wykonane = EXCLUDED.wykonane
	`, r.table)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	// no-op once committed
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, query,
		id,
		at,
		fields.Realizowane,
		fields.Oczekuje,
		fields.Combined,
		fields.NieDodane,
		fields.Wykonane,
	)
	if err != nil {
		return fmt.Errorf("upserting metrics: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing metrics: %w", err)
	}
	return nil
}

// GetByID retrieves a metrics row by id
func (r *MetricsPostgres) GetByID(ctx context.Context, id int64) (*entity.Record, error) {
	query := fmt.Sprintf(`
		SELECT id, created_at, realizowane, oczekuje, combined, nie_dodane, wykonane
		FROM %s
		WHERE id = $1
	`, r.table)

	var rec entity.Record
	var realizowane, oczekuje, combined, nieDodane, wykonane *string

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.CreatedAt,
		&realizowane,
		&oczekuje,
		&combined,
		&nieDodane,
		&wykonane,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying metrics: %w", err)
	}

	rec.Realizowane = deref(realizowane)
	rec.Oczekuje = deref(oczekuje)
	rec.Combined = deref(combined)
	rec.NieDodane = deref(nieDodane)
	rec.Wykonane = deref(wykonane)

	return &rec, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
