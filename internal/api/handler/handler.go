// Package handler provides HTTP handlers for all API endpoints.
// Handlers call the service layer, marshal the result once and keep the
// bytes in the response cache with an ETag.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gridiron-lab/nfl-data/internal/api/respond"
	"github.com/gridiron-lab/nfl-data/internal/cache"
	"github.com/gridiron-lab/nfl-data/internal/config"
	"github.com/gridiron-lab/nfl-data/internal/dataset"
	"github.com/gridiron-lab/nfl-data/internal/nflverse"
	"github.com/gridiron-lab/nfl-data/internal/service"
)

// Pinger checks a backing store. The Postgres store implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CacheObserver is told about every response cache lookup.
type CacheObserver interface {
	ObserveCache(hit bool)
}

// Deps are the handler dependencies. DB and Observer may be nil.
type Deps struct {
	Service  *service.Service
	Cache    cache.Store
	Config   *config.Config
	DB       Pinger
	Observer CacheObserver
	Logger   *slog.Logger
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	svc      *service.Service
	cache    cache.Store
	cfg      *config.Config
	db       Pinger
	observer CacheObserver
	logger   *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		svc:      d.Service,
		cache:    d.Cache,
		cfg:      d.Config,
		db:       d.DB,
		observer: d.Observer,
		logger:   logger,
	}
}

// serveCached answers from the response cache when possible, otherwise
// builds the value, stores its JSON and writes it.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, build func(ctx context.Context) (any, error)) {
	if data, etag, ok := h.cache.Get(r.Context(), key); ok {
		h.observe(true)
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}
	h.observe(false)

	v, err := build(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("encode response: %w", err))
		return
	}

	etag := h.cache.Set(r.Context(), key, data, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}

func (h *Handler) observe(hit bool) {
	if h.observer != nil {
		h.observer.ObserveCache(hit)
	}
}

// writeError maps service and upstream failures onto the error envelope.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		yearErr     *service.InvalidYearError
		upstreamErr *nflverse.UpstreamError
		paramErr    *paramError
	)
	switch {
	case errors.As(err, &paramErr):
		respond.WriteError(w, http.StatusBadRequest, paramErr.code, paramErr.message)
	case errors.Is(err, service.ErrDatasetNotFound):
		respond.WriteErrorDetail(w, http.StatusNotFound, "DATASET_NOT_FOUND", "Dataset not found", err.Error())
	case errors.Is(err, service.ErrPlayerNotFound):
		respond.WriteErrorDetail(w, http.StatusNotFound, "PLAYER_NOT_FOUND", "Player not found", err.Error())
	case errors.Is(err, service.ErrTeamNotFound):
		respond.WriteErrorDetail(w, http.StatusNotFound, "TEAM_NOT_FOUND", "Team not found", err.Error())
	case errors.Is(err, dataset.ErrNoData):
		respond.WriteErrorDetail(w, http.StatusNotFound, "NO_DATA", "No data loaded for the requested season", err.Error())
	case errors.As(err, &yearErr):
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_YEARS", "Year out of range", err.Error())
	case errors.As(err, &upstreamErr):
		h.logger.Warn("Upstream fetch failed", "path", r.URL.Path, "error", err)
		respond.WriteErrorDetail(w, http.StatusBadGateway, "UPSTREAM_ERROR", "Upstream fetch failed", upstreamErr.Error())
	case errors.Is(err, context.Canceled) && r.Context().Err() != nil:
		// Client went away; nothing useful to send.
	case errors.Is(err, context.DeadlineExceeded):
		respond.WriteError(w, http.StatusGatewayTimeout, "TIMEOUT", "Request timed out")
	default:
		h.logger.Error("Request failed", "path", r.URL.Path, "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}
