package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vadim/order-metrics/internal/config"
	httpcontroller "github.com/vadim/order-metrics/internal/controller/http"
	"github.com/vadim/order-metrics/internal/database"
	metricsdao "github.com/vadim/order-metrics/internal/domain/metrics/dao"
	metricspolicy "github.com/vadim/order-metrics/internal/domain/metrics/policy"
	metricsservice "github.com/vadim/order-metrics/internal/domain/metrics/service"
	orderspolicy "github.com/vadim/order-metrics/internal/domain/orders/policy"
	ordersservice "github.com/vadim/order-metrics/internal/domain/orders/service"
	progresspolicy "github.com/vadim/order-metrics/internal/domain/progress/policy"
	"github.com/vadim/order-metrics/internal/httpx/response"
	"github.com/vadim/order-metrics/internal/httpx/upstream/idosell"
	"github.com/vadim/order-metrics/internal/httpx/upstream/sheets"
	"github.com/vadim/order-metrics/internal/storage"
)

// App is the main application container
type App struct {
	cfg        config.Config
	httpServer *http.Server
	router     *chi.Mux
	logger     *slog.Logger

	pool   *pgxpool.Pool
	sheets *sheets.Client

	// Domain policies (interfaces for HTTP handlers)
	metricsPolicy  *metricspolicy.Policy
	progressPolicy *progresspolicy.Policy
}

// NewApp creates and initializes the application
func NewApp(ctx context.Context, cfg config.Config) (*App, error) {
	logger := newLogger(cfg.App.LogLevel)

	app := &App{
		cfg:    cfg,
		router: newRouter(cfg),
		logger: logger,
	}

	if err := app.initInfrastructure(ctx); err != nil {
		return nil, fmt.Errorf("initializing infrastructure: %w", err)
	}

	if err := app.initDomains(ctx); err != nil {
		app.pool.Close()
		return nil, fmt.Errorf("initializing domains: %w", err)
	}

	if err := app.registerRoutes(); err != nil {
		app.pool.Close()
		return nil, fmt.Errorf("registering routes: %w", err)
	}

	app.httpServer = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      app.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return app, nil
}

// newRouter builds the router with middleware, CORS and the liveness route
func newRouter(cfg config.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders: []string{"*"},
		MaxAge:         600,
	}))

	r.Get("/healthz", healthHandler)

	return r
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// initInfrastructure connects to Postgres and Google Sheets
func (a *App) initInfrastructure(ctx context.Context) error {
	pool, err := database.NewPostgresPool(ctx, a.cfg.Database.PostgresDSN, database.PoolConfig{
		MaxConns: a.cfg.Database.MaxConns,
		MinConns: a.cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	a.pool = pool

	creds, err := sheets.Credentials(a.cfg.Sheets.CredentialsJSON, a.cfg.Sheets.CredentialsFile)
	if err != nil {
		pool.Close()
		return fmt.Errorf("loading google credentials: %w", err)
	}
	sheetsClient, err := sheets.New(ctx, creds...)
	if err != nil {
		pool.Close()
		return fmt.Errorf("connecting to google sheets: %w", err)
	}
	a.sheets = sheetsClient

	return nil
}

// initDomains initializes domain layers (DAO, Service, Policy)
func (a *App) initDomains(ctx context.Context) error {
	sc := a.cfg.Sheets

	idsClient := idosell.New(
		idosell.WithBaseURL(a.cfg.IdoSell.BaseURL),
		idosell.WithAPIKey(a.cfg.IdoSell.APIKey),
		idosell.WithTimeout(a.cfg.IdoSell.Timeout),
	)

	// Orders
	ordersPolicy := orderspolicy.New(
		idsClient,
		a.sheets.Worksheet(sc.OrdersSpreadsheetID, sc.OrdersSheet),
		ordersservice.RowFilter{
			StateColumn:    a.cfg.Classifier.StateColumn,
			ItemNameColumn: a.cfg.Classifier.ItemNameColumn,
			State:          a.cfg.Classifier.NewState,
			ExclusionTerm:  a.cfg.Classifier.ExclusionTerm,
		},
	)

	// Daily progress
	a.progressPolicy = progresspolicy.New(
		a.sheets.Worksheet(sc.SeriesSpreadsheetID, sc.SeriesSheet),
		a.sheets.Worksheet(sc.OrdersSpreadsheetID, sc.ConfigSheet),
		a.sheets.Worksheet(sc.OrdersSpreadsheetID, sc.OutputSheet),
		progresspolicy.Layout{
			SeriesColumn: sc.SeriesColumn,
			SeriesWindow: sc.SeriesWindow,
			MarkerCell:   sc.MarkerCell,
			Location:     a.cfg.App.Location(),
		},
		a.logger,
	)

	// Metrics cache
	metricsRepo := metricsdao.NewMetricsPostgres(a.pool, a.cfg.Database.MetricsTable)
	if a.cfg.Database.AutoMigrate {
		if err := metricsRepo.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	var archive metricspolicy.SnapshotArchiver
	if a.cfg.S3.Enabled {
		archive = storage.NewS3Storage(storage.S3Config{
			Endpoint:        a.cfg.S3.Endpoint,
			AccessKeyID:     a.cfg.S3.AccessKeyID,
			SecretAccessKey: a.cfg.S3.SecretAccessKey,
			Bucket:          a.cfg.S3.Bucket,
			Region:          a.cfg.S3.Region,
			Prefix:          a.cfg.S3.Prefix,
		})
	}

	a.metricsPolicy = metricspolicy.New(
		metricsservice.New(metricsRepo, a.logger),
		ordersPolicy,
		a.progressPolicy,
		archive,
		a.logger,
	)

	return nil
}

// registerRoutes registers all HTTP routes
func (a *App) registerRoutes() error {
	a.router.Get("/readyz", a.readyHandler)

	swaggerHandler, err := httpcontroller.NewSwaggerHandler("Order Metrics API", OpenAPISpec)
	if err != nil {
		return err
	}
	swaggerHandler.RegisterRoutes(a.router)

	dashboardHandler := httpcontroller.NewDashboardHandler(a.metricsPolicy, a.progressPolicy, a.cfg.App.Location())
	dashboardHandler.RegisterRoutes(a.router)

	return nil
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{"status": "ok"})
}

// readyHandler reports ready once the database answers a ping
func (a *App) readyHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.pool.Ping(ctx); err != nil {
		response.ServiceUnavailable(w, "database unavailable")
		return
	}
	response.OK(w, map[string]string{"status": "ready"})
}

// Run starts the application and blocks until shutdown signal
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", "addr", a.cfg.Server.Address())
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.pool.Close()
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.logger.Info("received shutdown signal", "signal", sig.String())
	case <-ctx.Done():
		a.logger.Info("context cancelled")
	}

	return a.Shutdown(context.Background())
}

// Shutdown gracefully shuts down the application
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}

	a.pool.Close()

	a.logger.Info("shutdown complete")
	return nil
}
