// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/codr1/habitgrid/internal/api"
	"github.com/codr1/habitgrid/internal/api/habits"
	"github.com/codr1/habitgrid/internal/api/summary"
	"github.com/codr1/habitgrid/internal/cache"
	"github.com/codr1/habitgrid/internal/config"
	"github.com/codr1/habitgrid/internal/db"
	"github.com/codr1/habitgrid/internal/habitapi"
	"github.com/codr1/habitgrid/internal/ratelimit"
	"github.com/codr1/habitgrid/internal/scheduler"
)

// dependencies are the long-lived collaborators shared by all handlers.
type dependencies struct {
	client        *habitapi.Client
	database      *db.DB
	summaryCache  *cache.SummaryCache
	source        *cache.Source
	toggleLimiter *ratelimit.Limiter
	registry      *prometheus.Registry
	httpMetrics   *api.HTTPMetrics

	closeOnce sync.Once
}

func newDependencies(cfg *config.Config) (*dependencies, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	client, err := habitapi.New(habitapi.Options{
		BaseURL:           cfg.HabitAPI.BaseURL,
		Token:             cfg.HabitAPI.Token,
		Timeout:           cfg.APITimeout(),
		RequestsPerSecond: cfg.HabitAPI.RequestsPerSecond,
		Burst:             cfg.HabitAPI.Burst,
	})
	if err != nil {
		return nil, fmt.Errorf("habit api client: %w", err)
	}

	deps := &dependencies{client: client}

	if cfg.Features.EnableMetrics {
		deps.registry = prometheus.NewRegistry()
		deps.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		if err := habitapi.RegisterMetrics(deps.registry); err != nil {
			return nil, fmt.Errorf("register habit api metrics: %w", err)
		}
		deps.httpMetrics, err = api.NewHTTPMetrics(deps.registry)
		if err != nil {
			return nil, fmt.Errorf("register http metrics: %w", err)
		}
	}

	if cfg.Features.EnableCache {
		database, err := db.NewFromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("open summary cache: %w", err)
		}
		deps.database = database
		deps.summaryCache = cache.NewSummaryCache(database)
	}
	deps.source = cache.NewSource(client, deps.summaryCache, cfg.CacheMaxAge())

	if deps.summaryCache != nil {
		if err := scheduler.Init(loc); err != nil {
			deps.Close()
			return nil, fmt.Errorf("init scheduler: %w", err)
		}
		svc, err := scheduler.ServiceInstance()
		if err != nil {
			deps.Close()
			return nil, err
		}
		if err := scheduler.RegisterSummaryRefreshJob(svc, deps.source, cfg.Cache.RefreshCron); err != nil {
			deps.Close()
			return nil, fmt.Errorf("register summary refresh job: %w", err)
		}
	}

	deps.toggleLimiter = ratelimit.New(&ratelimit.Config{
		PerMinute:  cfg.ToggleLimit.PerMinute,
		Burst:      cfg.ToggleLimit.Burst,
		TrustProxy: cfg.ToggleLimit.TrustProxy,
	})

	summary.InitHandlers(summary.Deps{
		Source:   deps.source,
		Location: loc,
		Palette:  cfg.Palette,
	})
	habits.InitHandlers(habits.Deps{
		API:      client,
		Location: loc,
		Palette:  cfg.Palette,
	})

	return deps, nil
}

func (d *dependencies) Close() {
	d.closeOnce.Do(func() {
		if d.toggleLimiter != nil {
			d.toggleLimiter.Close()
		}
		if d.database != nil {
			if err := d.database.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close database")
			}
		}
	})
}

func newServer(cfg *config.Config, deps *dependencies) *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain
	middleware := []api.Middleware{
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	}
	if deps.httpMetrics != nil {
		middleware = append([]api.Middleware{deps.httpMetrics.WithMetrics}, middleware...)
	}
	handler := api.ChainMiddleware(router, middleware...)

	// Register routes
	registerRoutes(router, cfg, deps)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config, deps *dependencies) {
	// Summary grid
	mux.HandleFunc("GET /{$}", summary.HandleSummaryPage)
	mux.HandleFunc("GET /api/v1/summary/grid", summary.HandleSummaryGrid)

	// Day checklist
	mux.HandleFunc("GET /day", habits.HandleDayPage)
	mux.Handle("POST /habits/{id}/toggle", deps.toggleLimiter.Middleware(http.HandlerFunc(habits.HandleToggleHabit)))

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if deps.registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(deps.registry, promhttp.HandlerOpts{}))
	}

	// Static file handling
	staticDir := cfg.App.StaticDir
	fs := http.FileServer(http.Dir(staticDir))

	mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
