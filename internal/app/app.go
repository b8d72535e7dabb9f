// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gridops/faultdispatch/internal/config"
	"github.com/gridops/faultdispatch/internal/dispatch"
	dispatchpostgres "github.com/gridops/faultdispatch/internal/dispatch/postgres"
	"github.com/gridops/faultdispatch/internal/faults"
	faultspostgres "github.com/gridops/faultdispatch/internal/faults/postgres"
	"github.com/gridops/faultdispatch/internal/pkg/ctxlog"
	"github.com/gridops/faultdispatch/internal/pkg/httputil"
	"github.com/gridops/faultdispatch/internal/pkg/metrics"
	"github.com/gridops/faultdispatch/internal/pkg/postgres"
	"github.com/gridops/faultdispatch/internal/roster"
	rosterpostgres "github.com/gridops/faultdispatch/internal/roster/postgres"
	"github.com/gridops/faultdispatch/internal/scheduler"
	"github.com/gridops/faultdispatch/internal/version"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// App represents the application instance.
type App struct {
	config           *config.Config
	logger           *slog.Logger
	db               *pgxpool.Pool
	server           *http.Server
	metricsServer    *http.Server
	collectorsCancel context.CancelFunc
	autoAssignWorker *scheduler.Worker
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	logger := initLogger(cfg.Log)

	connectCtx, connectCancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer connectCancel()

	db, err := postgres.Connect(connectCtx, postgres.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnectAttempts: cfg.Database.ConnectAttempts,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if cfg.Database.Migrate {
		if err := postgres.Migrate(cfg.Database.URL); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	collectorsCtx, collectorsCancel := context.WithCancel(context.Background())

	app := &App{
		config:           cfg,
		logger:           logger,
		db:               db,
		collectorsCancel: collectorsCancel,
	}

	go app.collectDBMetrics(collectorsCtx)

	router, worker := app.setupRouter(collectorsCtx)
	app.autoAssignWorker = worker

	app.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Metrics server on separate port
	metricsRouter := chi.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.Handler())

	app.metricsServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.MetricsPort),
		Handler:           metricsRouter,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return app, nil
}

// Run starts the HTTP servers.
func (a *App) Run() error {
	// Start metrics server in background
	go func() {
		a.logger.Info("starting metrics server",
			"host", a.config.Server.Host,
			"port", a.config.Server.MetricsPort,
		)
		if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("metrics server error", "error", err)
		}
	}()

	a.logger.Info("starting server",
		"host", a.config.Server.Host,
		"port", a.config.Server.Port,
	)

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down servers")

	a.collectorsCancel()

	// Stop the worker first so no new mutations land mid-shutdown
	if a.autoAssignWorker != nil {
		a.autoAssignWorker.Stop()
	}

	// Shutdown both servers in parallel
	var wg sync.WaitGroup
	var errs []error
	var mu sync.Mutex

	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := a.server.Shutdown(ctx); err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("shutdown server: %w", err))
			mu.Unlock()
		}
	}()

	go func() {
		defer wg.Done()
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("shutdown metrics server: %w", err))
			mu.Unlock()
		}
	}()

	wg.Wait()

	a.db.Close()

	return errors.Join(errs...)
}

func (a *App) collectDBMetrics(ctx context.Context) {
	// Collect immediately on start
	metrics.RecordDBPoolMetrics(a.db)

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			metrics.RecordDBPoolMetrics(a.db)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) collectSLAMetrics(ctx context.Context, service *faults.Service) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			counts, err := service.SLABreakdown(ctx)
			if err != nil {
				slog.Error("failed to collect sla breakdown", "error", err)
				continue
			}
			for state, bySeverity := range counts {
				for severity, n := range bySeverity {
					metrics.SLAIncidents.WithLabelValues(string(state), string(severity)).Set(float64(n))
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// Router returns the HTTP handler for testing.
func (a *App) Router() http.Handler {
	return a.server.Handler
}

// AutoAssignWorker returns the worker instance, or nil when auto-assign
// is disabled. Used in tests to access worker state.
func (a *App) AutoAssignWorker() *scheduler.Worker {
	return a.autoAssignWorker
}

func (a *App) setupRouter(ctx context.Context) (*chi.Mux, *scheduler.Worker) {
	r := chi.NewRouter()

	// Metrics middleware must be first to measure full request time
	r.Use(httputil.MetricsMiddleware)

	// CORS must be early to handle preflight requests before other middleware
	r.Use(httputil.CORSMiddleware(a.config.CORS.AllowedOrigins))
	r.Use(middleware.RequestID)
	r.Use(httputil.RequestLoggerMiddleware(a.logger))
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", a.healthzHandler)
	r.Get("/readyz", a.readyzHandler)
	r.Get("/version", a.versionHandler)

	rosterRepo := rosterpostgres.NewRepository(a.db)
	rosterService := roster.NewService(rosterRepo)
	rosterHandler := roster.NewHandler(rosterService)

	faultsRepo := faultspostgres.NewRepository(a.db)
	faultsService := faults.NewService(faultsRepo, a.config.SLA)
	faultsHandler := faults.NewHandler(faultsService)

	var limiter *rate.Limiter
	if a.config.Dispatch.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(a.config.Dispatch.RateLimit), a.config.Dispatch.Burst)
	}

	dispatchRepo := dispatchpostgres.NewRepository(a.db)
	dispatchService := dispatch.NewService(dispatchRepo, limiter)
	dispatchHandler := dispatch.NewHandler(dispatchService)

	matcher := scheduler.NewMatcher(a.config.Skills)
	planner := scheduler.NewPlanner(matcher, a.config.SLA)
	schedulerService := scheduler.NewService(planner, faultsService, rosterService, dispatchService)
	schedulerHandler := scheduler.NewHandler(schedulerService)

	go a.collectSLAMetrics(ctx, faultsService)

	var worker *scheduler.Worker
	if a.config.Scheduler.AutoAssignEnabled {
		worker = scheduler.NewWorker(scheduler.WorkerConfig{
			Interval: a.config.Scheduler.AutoAssignInterval,
		}, schedulerService)
		worker.Start(ctx)
	}

	r.Route("/api/v1", func(r chi.Router) {
		rosterHandler.RegisterRoutes(r)
		faultsHandler.RegisterRoutes(r)
		dispatchHandler.RegisterRoutes(r)
		schedulerHandler.RegisterRoutes(r)
	})

	return r, worker
}

func (a *App) healthzHandler(w http.ResponseWriter, _ *http.Request) {
	httputil.Text(w, http.StatusOK, "OK")
}

func (a *App) readyzHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.db.Ping(ctx); err != nil {
		ctxlog.FromContext(r.Context()).Error("readiness check failed", "error", err)
		httputil.Text(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	httputil.Text(w, http.StatusOK, "OK")
}

func (a *App) versionHandler(w http.ResponseWriter, _ *http.Request) {
	httputil.JSON(w, http.StatusOK, map[string]string{
		"version":    version.Version,
		"commit":     version.GitCommit,
		"build_date": version.BuildDate,
	})
}

func initLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
