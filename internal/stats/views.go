package stats

import (
	"slices"
	"strings"
)

// Defaults for the derived views.
const (
	DefaultLeaderLimit = 10
	ComparisonSize     = 10
	OtherPosition      = "Other"
)

// DefaultLeaderStats are the stats ranked when a leaders request names none.
var DefaultLeaderStats = []string{
	"passing_yards", "rushing_yards", "receiving_yards",
	"passing_tds", "rushing_tds", "receiving_tds",
	"fantasy_points_ppr",
}

// PositionOrder is the display order of position groups on a team page.
var PositionOrder = []string{"QB", "RB", "WR", "TE", "FB", "K", "P"}

// Conference and division display order of the league grid.
var (
	ConferenceOrder = []string{"AFC", "NFC"}
	DivisionOrder   = []string{"East", "North", "South", "West"}
)

// LeaderEntry is one ranked player for a stat.
type LeaderEntry struct {
	Rank       int     `json:"rank"`
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Position   string  `json:"position"`
	Team       string  `json:"team"`
	Value      float64 `json:"value"`
}

// Leaders ranks players for stat and returns the first limit entries.
func Leaders(players []EnrichedPlayer, stat string, limit int) []LeaderEntry {
	if limit <= 0 {
		limit = DefaultLeaderLimit
	}
	sorted := SortPlayers(players, stat)
	n := min(limit, len(sorted))
	out := make([]LeaderEntry, n)
	for i := range n {
		p := &sorted[i]
		out[i] = LeaderEntry{
			Rank:       i + 1,
			PlayerID:   p.PlayerID,
			PlayerName: p.PlayerName,
			Position:   p.Position,
			Team:       p.Team,
			Value:      p.Stat(stat),
		}
	}
	return out
}

// PositionGroup is the players of a team at one position.
type PositionGroup struct {
	Position string           `json:"position"`
	Players  []EnrichedPlayer `json:"players"`
}

// GroupByPosition buckets players by position, keeping their relative order.
// Groups follow PositionOrder, then any other positions alphabetically, with
// players lacking a position collected under OtherPosition last.
func GroupByPosition(players []EnrichedPlayer) []PositionGroup {
	buckets := make(map[string][]EnrichedPlayer)
	for _, p := range players {
		pos := p.Position
		if pos == "" {
			pos = OtherPosition
		}
		buckets[pos] = append(buckets[pos], p)
	}

	out := make([]PositionGroup, 0, len(buckets))
	for _, pos := range PositionOrder {
		if ps, ok := buckets[pos]; ok {
			out = append(out, PositionGroup{Position: pos, Players: ps})
			delete(buckets, pos)
		}
	}
	other, hasOther := buckets[OtherPosition]
	delete(buckets, OtherPosition)

	rest := make([]string, 0, len(buckets))
	for pos := range buckets {
		rest = append(rest, pos)
	}
	slices.Sort(rest)
	for _, pos := range rest {
		out = append(out, PositionGroup{Position: pos, Players: buckets[pos]})
	}
	if hasOther {
		out = append(out, PositionGroup{Position: OtherPosition, Players: other})
	}
	return out
}

// TeamView is one team's aggregate plus its roster ranked by a stat.
type TeamView struct {
	Team    AggregatedTeam   `json:"team"`
	SortBy  string           `json:"sort_by"`
	Players []EnrichedPlayer `json:"players"`
	Groups  []PositionGroup  `json:"groups"`
}

// BuildTeamView collects the players of team, sorted by stat and grouped by
// position.
func BuildTeamView(team AggregatedTeam, players []EnrichedPlayer, stat string) TeamView {
	members := make([]EnrichedPlayer, 0)
	for _, p := range players {
		if p.Team == team.TeamAbbr {
			members = append(members, p)
		}
	}
	sortPlayersInPlace(members, stat)
	return TeamView{
		Team:    team,
		SortBy:  stat,
		Players: members,
		Groups:  GroupByPosition(members),
	}
}

// ComparisonPoint is one bar of a player comparison chart.
type ComparisonPoint struct {
	PlayerID   string  `json:"player_id"`
	PlayerName string  `json:"player_name"`
	Team       string  `json:"team"`
	Value      float64 `json:"value"`
	IsTarget   bool    `json:"is_target"`
}

// PlayerView is one player plus how they compare with their position peers.
type PlayerView struct {
	Player     EnrichedPlayer    `json:"player"`
	SortBy     string            `json:"sort_by"`
	Comparison []ComparisonPoint `json:"comparison"`
}

// BuildPlayerView ranks the players sharing target's position by stat and
// keeps the top ComparisonSize. target is appended when it falls outside.
func BuildPlayerView(target EnrichedPlayer, players []EnrichedPlayer, stat string) PlayerView {
	peers := make([]EnrichedPlayer, 0)
	for _, p := range players {
		if p.Position == target.Position {
			peers = append(peers, p)
		}
	}
	sortPlayersInPlace(peers, stat)

	points := make([]ComparisonPoint, 0, ComparisonSize+1)
	found := false
	for i := 0; i < len(peers) && i < ComparisonSize; i++ {
		p := &peers[i]
		isTarget := p.PlayerID == target.PlayerID
		found = found || isTarget
		points = append(points, comparisonPoint(p, stat, isTarget))
	}
	if !found {
		points = append(points, comparisonPoint(&target, stat, true))
	}
	return PlayerView{Player: target, SortBy: stat, Comparison: points}
}

func comparisonPoint(p *EnrichedPlayer, stat string, isTarget bool) ComparisonPoint {
	return ComparisonPoint{
		PlayerID:   p.PlayerID,
		PlayerName: p.PlayerName,
		Team:       p.Team,
		Value:      p.Stat(stat),
		IsTarget:   isTarget,
	}
}

// Division is one division of the league grid.
type Division struct {
	Name  string           `json:"name"`
	Teams []AggregatedTeam `json:"teams"`
}

// Conference is one conference of the league grid.
type Conference struct {
	Name      string     `json:"name"`
	Divisions []Division `json:"divisions"`
}

// LeagueGrid arranges aggregated teams by conference and division using the
// team descriptions. Teams with no conference are left out. Teams within a
// division keep the order of teams.
func LeagueGrid(teams []AggregatedTeam) []Conference {
	grid := make(map[string]map[string][]AggregatedTeam)
	for _, t := range teams {
		if t.TeamConf == "" {
			continue
		}
		div := divisionName(t.TeamConf, t.TeamDivision)
		if grid[t.TeamConf] == nil {
			grid[t.TeamConf] = make(map[string][]AggregatedTeam)
		}
		grid[t.TeamConf][div] = append(grid[t.TeamConf][div], t)
	}

	out := make([]Conference, 0, len(grid))
	for _, conf := range orderedKeys(grid, ConferenceOrder) {
		divs := grid[conf]
		c := Conference{Name: conf, Divisions: make([]Division, 0, len(divs))}
		for _, div := range orderedKeys(divs, DivisionOrder) {
			c.Divisions = append(c.Divisions, Division{Name: div, Teams: divs[div]})
		}
		out = append(out, c)
	}
	return out
}

// divisionName strips the conference prefix: "AFC East" becomes "East".
func divisionName(conf, division string) string {
	name := strings.TrimSpace(strings.TrimPrefix(division, conf))
	if name == "" {
		return division
	}
	return name
}

// orderedKeys returns the keys of m listed in order first, then the rest
// alphabetically.
func orderedKeys[V any](m map[string]V, order []string) []string {
	keys := make([]string, 0, len(m))
	for _, k := range order {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
		}
	}
	rest := make([]string, 0)
	for k := range m {
		if !slices.Contains(order, k) {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	return append(keys, rest...)
}
