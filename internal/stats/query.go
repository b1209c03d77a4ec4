package stats

import (
	"slices"
)

// DefaultPlayerLimit is the page size when a query leaves Limit unset.
const DefaultPlayerLimit = 500

// PlayerQuery filters, sorts and pages a season of enriched players. Empty
// filter fields match everything.
type PlayerQuery struct {
	SortBy     string
	Position   string
	Team       string
	Conference string
	PlayerID   string
	Limit      int
	Offset     int
}

// PlayerPage is one page of a player query.
type PlayerPage struct {
	Year               int              `json:"year"`
	Data               []EnrichedPlayer `json:"data"`
	Total              int              `json:"total"`
	Offset             int              `json:"offset"`
	Limit              int              `json:"limit"`
	AvailablePositions []string         `json:"available_positions"`
	AvailableTeams     []string         `json:"available_teams"`
}

// Matches reports whether p passes every filter of q.
func (q PlayerQuery) Matches(p *EnrichedPlayer) bool {
	if q.Position != "" && p.Position != q.Position {
		return false
	}
	if q.Team != "" && p.Team != q.Team {
		return false
	}
	if q.Conference != "" && p.TeamConf != q.Conference {
		return false
	}
	if q.PlayerID != "" && p.PlayerID != q.PlayerID {
		return false
	}
	return true
}

// QueryPlayers applies q to players. The available positions and teams are
// computed from the unfiltered input. players is not modified.
func QueryPlayers(players []EnrichedPlayer, q PlayerQuery) PlayerPage {
	if q.Limit <= 0 {
		q.Limit = DefaultPlayerLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	filtered := make([]EnrichedPlayer, 0, len(players))
	for i := range players {
		if q.Matches(&players[i]) {
			filtered = append(filtered, players[i])
		}
	}
	if q.SortBy != "" {
		sortPlayersInPlace(filtered, q.SortBy)
	}

	total := len(filtered)
	start := min(q.Offset, total)
	end := min(start+q.Limit, total)

	return PlayerPage{
		Data:               filtered[start:end],
		Total:              total,
		Offset:             q.Offset,
		Limit:              q.Limit,
		AvailablePositions: distinct(players, func(p *EnrichedPlayer) string { return p.Position }),
		AvailableTeams:     distinct(players, func(p *EnrichedPlayer) string { return p.Team }),
	}
}

// SortPlayers returns a copy of players ordered by stat, descending, with
// ties kept in input order. Non-stat keys sort every player as zero.
func SortPlayers(players []EnrichedPlayer, stat string) []EnrichedPlayer {
	out := slices.Clone(players)
	sortPlayersInPlace(out, stat)
	return out
}

func sortPlayersInPlace(players []EnrichedPlayer, stat string) {
	slices.SortStableFunc(players, func(a, b EnrichedPlayer) int {
		return compareDesc(a.Stat(stat), b.Stat(stat))
	})
}

func distinct(players []EnrichedPlayer, field func(*EnrichedPlayer) string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for i := range players {
		v := field(&players[i])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// FindPlayer returns the player with id.
func FindPlayer(players []EnrichedPlayer, id string) (EnrichedPlayer, bool) {
	for _, p := range players {
		if p.PlayerID == id {
			return p, true
		}
	}
	return EnrichedPlayer{}, false
}
