package handler

import (
	"net/http"
	"time"

	"github.com/gridiron-lab/nfl-data/internal/api/respond"
)

// Root serves API info at /.
// @Summary API root info
// @Description Returns service name, version, status and data source.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"service":        "nfl-data-api",
		"version":        "1.0.0",
		"docs":           "/docs",
		"data_source":    h.cfg.DataSource,
		"current_season": h.svc.CurrentSeason(),
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity when the service reads from Postgres.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		respond.WriteJSONObject(w, http.StatusOK, map[string]any{
			"status":    "healthy",
			"database":  "not_configured",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Warn("Database health check failed", "error", err)
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     "Database connection check failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns response cache and data memo statistics.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.cache.Ping(r.Context()); err != nil {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	respond.WriteJSONObject(w, code, map[string]any{
		"status":    status,
		"cache":     h.cache.Stats(r.Context()),
		"data":      h.svc.CacheStats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ClearCache drops every memoised dataset, season and cached response.
// @Summary Clear caches
// @Description Flushes raw dataset tables, enriched seasons and the response cache so the next request refetches.
// @Tags cache
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/v1/cache/clear [post]
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearCache()
	if err := h.cache.Clear(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.logger.Info("Caches cleared via API", "remote", r.RemoteAddr)
	respond.WriteJSONObject(w, http.StatusOK, map[string]string{"status": "cache cleared"})
}
