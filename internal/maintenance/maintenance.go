// Package maintenance runs periodic background tasks: a ticker that evicts
// expired responses and an optional cron schedule that refreshes the current
// season while the upstream publishes in-season updates.
package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/gridiron-lab/nfl-data/internal/cache"
)

// Config controls maintenance tasks. A zero interval or empty schedule
// disables the task.
type Config struct {
	EvictInterval   time.Duration // Expired response cache entries
	RefreshSchedule string        // Cron spec for the current season refresh
	RefreshTimeout  time.Duration
	Location        *time.Location
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		EvictInterval:  5 * time.Minute,
		RefreshTimeout: 5 * time.Minute,
	}
}

// Tasks are the operations maintenance drives.
type Tasks struct {
	Cache   cache.Store
	Refresh func(ctx context.Context) error
}

// Start launches all configured maintenance tasks. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, tasks Tasks, cfg Config, logger *slog.Logger) error {
	var scheduler *cron.Cron
	if cfg.RefreshSchedule != "" && tasks.Refresh != nil {
		var err error
		scheduler, err = newScheduler(ctx, tasks.Refresh, cfg, logger)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
	}

	logger.Info("Maintenance started",
		"evict", cfg.EvictInterval,
		"refresh_schedule", cfg.RefreshSchedule)

	if cfg.EvictInterval > 0 && tasks.Cache != nil {
		t := time.NewTicker(cfg.EvictInterval)
		defer t.Stop()
		go runLoop(ctx, t.C, func() { evict(ctx, tasks.Cache, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance stopped")
	return nil
}

func newScheduler(ctx context.Context, refresh func(context.Context) error, cfg Config, logger *slog.Logger) (*cron.Cron, error) {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	timeout := cfg.RefreshTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(cfg.RefreshSchedule, func() {
		runCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		if err := refresh(runCtx); err != nil {
			logger.Error("Scheduled refresh failed", "error", err)
			return
		}
		logger.Info("Scheduled refresh complete", "duration", time.Since(start).Round(time.Millisecond))
	})
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_SCHEDULE %q: %w", cfg.RefreshSchedule, err)
	}
	return c, nil
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// evict drops expired response cache entries.
func evict(ctx context.Context, store cache.Store, logger *slog.Logger) {
	if n := store.Evict(ctx); n > 0 {
		logger.Info("Evicted expired responses", "count", n)
	}
}
