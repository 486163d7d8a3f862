package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vadim/order-metrics/internal/domain/metrics/entity"
	progressentity "github.com/vadim/order-metrics/internal/domain/progress/entity"
	"github.com/vadim/order-metrics/internal/httpx/response"
)

// MetricsPolicy defines the interface for dashboard metrics operations
// Interface is defined by consumer (handler), not provider (policy)
type MetricsPolicy interface {
	Refresh(ctx context.Context) (*entity.Snapshot, error)
	Current(ctx context.Context) *entity.Record
}

// DailyRecorder defines the interface for recording the daily progress count
type DailyRecorder interface {
	SaveDaily(ctx context.Context, now time.Time) (*progressentity.DailyResult, error)
}

// DashboardHandler handles the dashboard HTTP routes
type DashboardHandler struct {
	metrics  MetricsPolicy
	daily    DailyRecorder
	location *time.Location
	now      func() time.Time
}

// NewDashboardHandler creates a new dashboard handler; timestamps are rendered in loc
func NewDashboardHandler(metrics MetricsPolicy, daily DailyRecorder, loc *time.Location) *DashboardHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardHandler{
		metrics:  metrics,
		daily:    daily,
		location: loc,
		now:      time.Now,
	}
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/search_orders", h.SearchOrders())
	r.Get("/save_daily", h.SaveDaily())
	r.Get("/get_data", h.GetData())
}

// DataResponse represents the cached metrics as read by the dashboard
type DataResponse struct {
	Realizowane string  `json:"output_realizowane"`
	Oczekuje    string  `json:"output_oczekuje"`
	Combined    string  `json:"output_combined"`
	NieDodane   string  `json:"output_nie_dodane"`
	Wykonane    string  `json:"output_wykonane"`
	Timestamp   *string `json:"timestamp"` // HH:MM
}

// SearchOrders handles GET /search_orders
func (h *DashboardHandler) SearchOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.metrics.Refresh(r.Context()); err != nil {
			response.Failure(w, http.StatusInternalServerError, err.Error())
			return
		}

		response.Success(w, "Data updated successfully")
	}
}

// SaveDaily handles GET /save_daily
func (h *DashboardHandler) SaveDaily() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := h.daily.SaveDaily(r.Context(), h.now()); err != nil {
			response.InternalError(w, err.Error())
			return
		}

		response.Success(w, "")
	}
}

// GetData handles GET /get_data
func (h *DashboardHandler) GetData() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := h.metrics.Current(r.Context())
		if rec == nil {
			response.NotFound(w, fmt.Sprintf("No record found with id=%d", entity.SingletonID))
			return
		}

		var timestamp *string
		if rec.CreatedAt != nil {
			ts := rec.CreatedAt.In(h.location).Format("15:04")
			timestamp = &ts
		}

		response.OK(w, DataResponse{
			Realizowane: rec.Realizowane,
			Oczekuje:    rec.Oczekuje,
			Combined:    rec.Combined,
			NieDodane:   rec.NieDodane,
			Wykonane:    rec.Wykonane,
			Timestamp:   timestamp,
		})
	}
}
