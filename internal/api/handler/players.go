package handler

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gridiron-lab/nfl-data/internal/cache"
	"github.com/gridiron-lab/nfl-data/internal/stats"
)

// season resolves the requested year and picks the response TTL for it.
func (h *Handler) season(year int) (int, time.Duration) {
	current := h.svc.CurrentSeason()
	if year == 0 {
		year = current
	}
	return year, cache.TTLForSeason(year, current)
}

// GetPlayers returns enriched players for a season.
// @Summary List players
// @Description Returns season stats joined with roster and team identity, filtered, sorted descending by sort_by and paginated. available_positions and available_teams describe the whole season.
// @Tags players
// @Produce json
// @Param year query int false "Season (defaults to current)"
// @Param sort_by query string false "Stat key to sort by, descending"
// @Param position query string false "Position filter, e.g. QB"
// @Param team query string false "Team abbreviation filter"
// @Param conference query string false "Conference filter (AFC or NFC)"
// @Param player_id query string false "Player ID filter"
// @Param limit query int false "Rows per page" default(500)
// @Param offset query int false "Rows to skip" default(0)
// @Success 200 {object} stats.PlayerPage
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/players [get]
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	year, err := queryYear(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", stats.DefaultPlayerLimit, 1, maxDataLimit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0, 0, int(^uint(0)>>1))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	pq := stats.PlayerQuery{
		SortBy:     q.Get("sort_by"),
		Position:   q.Get("position"),
		Team:       q.Get("team"),
		Conference: q.Get("conference"),
		PlayerID:   q.Get("player_id"),
		Limit:      limit,
		Offset:     offset,
	}

	resolved, ttl := h.season(year)
	key := fmt.Sprintf("players:%d:%s:%s:%s:%s:%s:%d:%d",
		resolved, pq.SortBy, pq.Position, pq.Team, pq.Conference, pq.PlayerID, limit, offset)
	h.serveCached(w, r, key, ttl, func(ctx context.Context) (any, error) {
		return h.svc.Players(ctx, resolved, pq)
	})
}

// GetPlayer returns one player and a comparison against position peers.
// @Summary Get player
// @Description Returns an enriched player plus the top 10 players at the same position by sort_by, with the player appended when outside the top 10.
// @Tags players
// @Produce json
// @Param playerID path string true "Player ID"
// @Param year query int false "Season (defaults to current)"
// @Param sort_by query string false "Comparison stat (defaults by position)"
// @Success 200 {object} stats.PlayerView
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/players/{playerID} [get]
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "playerID")
	year, err := queryYear(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	sortBy := r.URL.Query().Get("sort_by")

	resolved, ttl := h.season(year)
	key := fmt.Sprintf("player:%d:%s:%s", resolved, id, sortBy)
	h.serveCached(w, r, key, ttl, func(ctx context.Context) (any, error) {
		return h.svc.PlayerDetail(ctx, resolved, id, sortBy)
	})
}

// ExportPlayers streams a season of enriched players as parquet.
// @Summary Export players
// @Description Returns every enriched player of the season as a snappy-compressed parquet file.
// @Tags players
// @Produce application/vnd.apache.parquet
// @Param year query int false "Season (defaults to current)"
// @Success 200 {file} file
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/players/export [get]
func (h *Handler) ExportPlayers(w http.ResponseWriter, r *http.Request) {
	year, err := queryYear(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resolved, _ := h.season(year)

	var buf bytes.Buffer
	n, err := h.svc.ExportPlayers(r.Context(), resolved, &buf)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.apache.parquet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="players_%d.parquet"`, resolved))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Row-Count", strconv.Itoa(n))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
