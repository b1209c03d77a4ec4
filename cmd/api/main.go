// Command api is the NFL Data API server.
//
// Usage:
//
//	nfl-api
//	API_PORT=8080 DATA_SOURCE=postgres nfl-api

// @title NFL Data API
// @version 1.0.0
// @description Season-level NFL player and team statistics built from the nflverse releases: raw dataset explorer, enriched players, team aggregates, leaders and league views.
// @host localhost:8000
// @BasePath /
// @schemes http https
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gridiron-lab/nfl-data/internal/api"
	"github.com/gridiron-lab/nfl-data/internal/api/handler"
	"github.com/gridiron-lab/nfl-data/internal/cache"
	"github.com/gridiron-lab/nfl-data/internal/config"
	"github.com/gridiron-lab/nfl-data/internal/dataset"
	"github.com/gridiron-lab/nfl-data/internal/db"
	"github.com/gridiron-lab/nfl-data/internal/listener"
	"github.com/gridiron-lab/nfl-data/internal/maintenance"
	"github.com/gridiron-lab/nfl-data/internal/metrics"
	"github.com/gridiron-lab/nfl-data/internal/nflverse"
	"github.com/gridiron-lab/nfl-data/internal/service"
	"github.com/gridiron-lab/nfl-data/internal/store"

	_ "github.com/gridiron-lab/nfl-data/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var rec *metrics.Recorder
	if cfg.MetricsEnabled {
		rec = metrics.New()
	}

	// Data source
	var (
		source dataset.Source
		st     *store.Store
		dbURL  string
	)
	switch cfg.DataSource {
	case config.SourcePostgres:
		logger.Info("Connecting to database...")
		pool, err := db.New(ctx, cfg)
		if err != nil {
			logger.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
		st = store.New(pool, cfg.DefaultYears, logger)
		source = st
		dbURL = cfg.DatabaseURL
	default:
		client := nflverse.NewClient(cfg.UpstreamTimeout, cfg.RequestsPerMinute, logger)
		var observer nflverse.Observer
		if rec != nil {
			observer = rec
		}
		source = nflverse.NewSource(client, nflverse.SourceConfig{
			SeasonalURL:  cfg.SeasonalURL,
			RostersURL:   cfg.RostersURL,
			TeamsURL:     cfg.TeamsURL,
			SeasonType:   cfg.SeasonType,
			DefaultYears: cfg.DefaultYears,
		}, observer, logger)
	}
	logger.Info("Data source ready", "source", cfg.DataSource)

	svc, err := service.New(source, service.Options{
		CurrentSeason: cfg.CurrentSeason,
		DefaultYears:  cfg.DefaultYears,
		RawCacheSize:  cfg.RawCacheSize,
		SeasonSize:    cfg.EnrichedCacheSize,
		LoadTimeout:   2 * cfg.UpstreamTimeout,
	}, logger)
	if err != nil {
		logger.Error("Failed to create service", "error", err)
		os.Exit(1)
	}

	// Response cache
	var respCache cache.Store
	if cfg.RedisURL != "" && cfg.CacheEnabled {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer rc.Close()
		respCache = rc
	} else {
		respCache = cache.NewMemory(cfg.CacheEnabled)
	}
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled, "redis", cfg.RedisURL != "")

	// Drops every cached view of the given seasons. Shared by the refresh
	// schedule and the LISTEN consumer.
	refreshed := func(ctx context.Context, seasons []int) {
		for _, y := range seasons {
			svc.Invalidate(y)
		}
		if err := respCache.Clear(ctx); err != nil {
			logger.Warn("Failed to clear response cache", "error", err)
		}
		if rec != nil {
			rec.ObserveRefresh()
		}
	}

	// Stored data changes when cmd/ingest seeds; listen so this instance
	// does not serve a stale copy.
	if dbURL != "" {
		go listener.Start(ctx, dbURL, listener.RefreshFunc(func(ctx context.Context, ev store.RefreshEvent) {
			refreshed(ctx, ev.Seasons)
		}), logger)
	}

	// Maintenance: response eviction plus the scheduled current-season refresh
	mcfg := maintenance.DefaultConfig()
	mcfg.RefreshSchedule = cfg.RefreshSchedule
	go func() {
		err := maintenance.Start(ctx, maintenance.Tasks{
			Cache: respCache,
			Refresh: func(ctx context.Context) error {
				refreshed(ctx, nil)
				return maintenance.RefreshSeasons(ctx, svc, []int{svc.CurrentSeason()}, logger)
			},
		}, mcfg, logger)
		if err != nil {
			logger.Error("Maintenance failed to start", "error", err)
		}
	}()

	var pinger handler.Pinger
	if st != nil {
		pinger = st
	}
	router := api.NewRouter(api.Options{
		Service: svc,
		Cache:   respCache,
		Config:  cfg,
		DB:      pinger,
		Metrics: rec,
		Logger:  logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2 * cfg.UpstreamTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting NFL Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"current_season", cfg.CurrentSeason,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
