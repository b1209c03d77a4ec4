package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gridiron-lab/nfl-data/internal/cache"
)

// GetTeamAggregates returns per-team season totals.
// @Summary Team aggregates
// @Description Sums player stats per team with derived total_yards and total_tds. Missing team colors fall back to neutral grays.
// @Tags teams
// @Produce json
// @Param year query int false "Season (defaults to current)"
// @Param team query string false "Team abbreviation filter"
// @Param sort_by query string false "Team stat to sort by, descending"
// @Success 200 {object} service.TeamAggregates
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/teams/aggregates [get]
func (h *Handler) GetTeamAggregates(w http.ResponseWriter, r *http.Request) {
	year, err := queryYear(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	team := strings.ToUpper(r.URL.Query().Get("team"))
	sortBy := r.URL.Query().Get("sort_by")

	resolved, ttl := h.season(year)
	key := fmt.Sprintf("teams:%d:%s:%s", resolved, team, sortBy)
	h.serveCached(w, r, key, ttl, func(ctx context.Context) (any, error) {
		return h.svc.TeamAggregates(ctx, resolved, team, sortBy)
	})
}

// GetTeamsMeta returns franchise identity.
// @Summary Team metadata
// @Description Returns names, conferences, divisions, colors and logos for every franchise.
// @Tags teams
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/teams/meta [get]
func (h *Handler) GetTeamsMeta(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, "teams:meta", cache.TTLTeams, func(ctx context.Context) (any, error) {
		teams, err := h.svc.TeamsMeta(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"teams": teams}, nil
	})
}

// GetTeam returns one team with its roster grouped by position.
// @Summary Get team
// @Description Returns the team aggregate plus its players sorted by sort_by and grouped QB, RB, WR, TE, FB, K, P, then other positions.
// @Tags teams
// @Produce json
// @Param abbr path string true "Team abbreviation"
// @Param year query int false "Season (defaults to current)"
// @Param sort_by query string false "Stat to sort players by" default(fantasy_points_ppr)
// @Success 200 {object} stats.TeamView
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/teams/{abbr} [get]
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	abbr := strings.ToUpper(chi.URLParam(r, "abbr"))
	year, err := queryYear(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	sortBy := r.URL.Query().Get("sort_by")

	resolved, ttl := h.season(year)
	key := fmt.Sprintf("team:%d:%s:%s", resolved, abbr, sortBy)
	h.serveCached(w, r, key, ttl, func(ctx context.Context) (any, error) {
		return h.svc.TeamDetail(ctx, resolved, abbr, sortBy)
	})
}

// GetLeague returns the conference and division grid.
// @Summary League grid
// @Description Returns team aggregates arranged by conference (AFC, NFC) and division (East, North, South, West).
// @Tags teams
// @Produce json
// @Param year query int false "Season (defaults to current)"
// @Success 200 {object} service.League
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /api/v1/league [get]
func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	year, err := queryYear(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resolved, ttl := h.season(year)
	h.serveCached(w, r, fmt.Sprintf("league:%d", resolved), ttl, func(ctx context.Context) (any, error) {
		return h.svc.League(ctx, resolved)
	})
}
