// Package listener provides a Postgres LISTEN/NOTIFY consumer for refresh
// events. It holds a dedicated pgx connection (not from the pool) listening
// on config.RefreshChannel.
//
// cmd/ingest raises the event after replacing stored seasons; each API
// instance receives it and drops the caches covering those seasons.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gridiron-lab/nfl-data/internal/config"
	"github.com/gridiron-lab/nfl-data/internal/store"
)

const (
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// Refresher drops whatever is cached for the seasons in an event.
type Refresher interface {
	Refresh(ctx context.Context, ev store.RefreshEvent)
}

// RefreshFunc adapts a function to Refresher.
type RefreshFunc func(ctx context.Context, ev store.RefreshEvent)

func (f RefreshFunc) Refresh(ctx context.Context, ev store.RefreshEvent) { f(ctx, ev) }

// Start opens a dedicated connection and listens on the refresh channel. It
// reconnects automatically on connection loss. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, refresher Refresher, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, refresher, logger)
		if ctx.Err() != nil {
			logger.Info("Refresh listener stopped (context cancelled)")
			return
		}

		logger.Error("Refresh listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, refresher Refresher, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+pgx.Identifier{config.RefreshChannel}.Sanitize())
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", config.RefreshChannel, err)
	}
	logger.Info("Refresh listener connected", "channel", config.RefreshChannel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		Dispatch(ctx, notification.Payload, refresher, logger)
	}
}

// Dispatch decodes one notification payload and hands it to refresher.
// Malformed payloads are logged and dropped.
func Dispatch(ctx context.Context, payload string, refresher Refresher, logger *slog.Logger) bool {
	var event store.RefreshEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		logger.Warn("Failed to parse refresh event", "payload", payload, "error", err)
		return false
	}

	logger.Info("Refresh event received",
		"run_id", event.RunID,
		"datasets", event.Datasets,
		"seasons", event.Seasons)
	refresher.Refresh(ctx, event)
	return true
}
