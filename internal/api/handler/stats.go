package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gridiron-lab/nfl-data/internal/cache"
	"github.com/gridiron-lab/nfl-data/internal/stats"
)

// GetLeaders returns the top players for a set of stats.
// @Summary Stat leaders
// @Description Ranks the season's players for each requested stat. Unknown stats are skipped.
// @Tags stats
// @Produce json
// @Param year query int false "Season (defaults to current)"
// @Param stats query string false "Comma-separated stat keys"
// @Param position query string false "Position filter"
// @Param limit query int false "Leaders per stat (1-100)" default(10)
// @Success 200 {object} service.Leaders
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/leaders [get]
func (h *Handler) GetLeaders(w http.ResponseWriter, r *http.Request) {
	year, err := queryYear(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", stats.DefaultLeaderLimit, 1, 100)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	keys := queryList(r, "stats")
	position := r.URL.Query().Get("position")

	resolved, ttl := h.season(year)
	key := fmt.Sprintf("leaders:%d:%s:%s:%d", resolved, strings.Join(keys, ","), position, limit)
	h.serveCached(w, r, key, ttl, func(ctx context.Context) (any, error) {
		return h.svc.Leaders(ctx, resolved, keys, position, limit)
	})
}

// GetStatCategories returns the leaderboard categories and team stats.
// @Summary Stat categories
// @Description Returns passing, rushing and receiving categories with their stats, display formats and table columns, plus the sortable team stats.
// @Tags stats
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/stats/categories [get]
func (h *Handler) GetStatCategories(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "stats:categories", cache.TTLRegistry, func(context.Context) (any, error) {
		return map[string]any{
			"categories":     stats.StatCategories,
			"team_stats":     stats.TeamStats,
			"position_order": stats.PositionOrder,
		}, nil
	})
}
