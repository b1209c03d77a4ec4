// Package stats joins raw nflverse season rows with roster and team
// identity, aggregates players into teams, and ranks, filters and pages the
// results. Everything here is a pure function over in-memory slices.
package stats

// SeasonStats is the set of per-player season statistics the service reads
// from the seasonal dataset.
type SeasonStats struct {
	Completions      float64 `json:"completions"`
	Attempts         float64 `json:"attempts"`
	PassingYards     float64 `json:"passing_yards"`
	PassingTDs       float64 `json:"passing_tds"`
	Interceptions    float64 `json:"interceptions"`
	Carries          float64 `json:"carries"`
	RushingYards     float64 `json:"rushing_yards"`
	RushingTDs       float64 `json:"rushing_tds"`
	Receptions       float64 `json:"receptions"`
	Targets          float64 `json:"targets"`
	ReceivingYards   float64 `json:"receiving_yards"`
	ReceivingTDs     float64 `json:"receiving_tds"`
	FantasyPoints    float64 `json:"fantasy_points"`
	FantasyPointsPPR float64 `json:"fantasy_points_ppr"`
	TgtSh            float64 `json:"tgt_sh"`
	WoprX            float64 `json:"wopr_x"`
	Dom              float64 `json:"dom"`
	TargetShare      float64 `json:"target_share"`
	Games            float64 `json:"games"`
}

var seasonFields = map[string]func(*SeasonStats) *float64{
	"completions":        func(s *SeasonStats) *float64 { return &s.Completions },
	"attempts":           func(s *SeasonStats) *float64 { return &s.Attempts },
	"passing_yards":      func(s *SeasonStats) *float64 { return &s.PassingYards },
	"passing_tds":        func(s *SeasonStats) *float64 { return &s.PassingTDs },
	"interceptions":      func(s *SeasonStats) *float64 { return &s.Interceptions },
	"carries":            func(s *SeasonStats) *float64 { return &s.Carries },
	"rushing_yards":      func(s *SeasonStats) *float64 { return &s.RushingYards },
	"rushing_tds":        func(s *SeasonStats) *float64 { return &s.RushingTDs },
	"receptions":         func(s *SeasonStats) *float64 { return &s.Receptions },
	"targets":            func(s *SeasonStats) *float64 { return &s.Targets },
	"receiving_yards":    func(s *SeasonStats) *float64 { return &s.ReceivingYards },
	"receiving_tds":      func(s *SeasonStats) *float64 { return &s.ReceivingTDs },
	"fantasy_points":     func(s *SeasonStats) *float64 { return &s.FantasyPoints },
	"fantasy_points_ppr": func(s *SeasonStats) *float64 { return &s.FantasyPointsPPR },
	"tgt_sh":             func(s *SeasonStats) *float64 { return &s.TgtSh },
	"wopr_x":             func(s *SeasonStats) *float64 { return &s.WoprX },
	"dom":                func(s *SeasonStats) *float64 { return &s.Dom },
	"target_share":       func(s *SeasonStats) *float64 { return &s.TargetShare },
	"games":              func(s *SeasonStats) *float64 { return &s.Games },
}

// Value returns the named stat. ok is false for keys that are not stats.
func (s *SeasonStats) Value(key string) (v float64, ok bool) {
	f, ok := seasonFields[key]
	if !ok {
		return 0, false
	}
	return *f(s), true
}

// IsPlayerStat reports whether key names a per-player stat.
func IsPlayerStat(key string) bool {
	_, ok := seasonFields[key]
	return ok
}

// SumKeys are the stats summed into a team aggregate.
var SumKeys = []string{
	"completions", "attempts", "passing_yards", "passing_tds", "interceptions",
	"carries", "rushing_yards", "rushing_tds",
	"receptions", "targets", "receiving_yards", "receiving_tds",
	"fantasy_points", "fantasy_points_ppr",
}

// PlayerSeasonRecord is one player's cumulative stats for one season.
type PlayerSeasonRecord struct {
	PlayerID string
	Season   int
	SeasonStats
}

// RosterEntry is a player's identity for a season.
type RosterEntry struct {
	PlayerID    string
	PlayerName  string
	Position    string
	Team        string
	HeadshotURL string
}

// TeamMeta is the static identity of a franchise.
type TeamMeta struct {
	TeamAbbr     string `json:"team_abbr"`
	TeamName     string `json:"team_name"`
	TeamNick     string `json:"team_nick"`
	TeamConf     string `json:"team_conf"`
	TeamDivision string `json:"team_division"`
	TeamColor    string `json:"team_color"`
	TeamColor2   string `json:"team_color2"`
	TeamLogoESPN string `json:"team_logo_espn"`
}

// EnrichedPlayer is a season record joined with its roster entry and team.
type EnrichedPlayer struct {
	PlayerID    string `json:"player_id"`
	Season      int    `json:"season"`
	PlayerName  string `json:"player_name"`
	Position    string `json:"position"`
	Team        string `json:"team"`
	HeadshotURL string `json:"headshot_url"`
	SeasonStats
	TeamMeta
}

// Stat returns the named stat, zero when key is not a stat.
func (p *EnrichedPlayer) Stat(key string) float64 {
	v, _ := p.Value(key)
	return v
}

// TeamTotals holds the summed stats of a team plus the derived totals.
type TeamTotals struct {
	Completions      float64 `json:"completions"`
	Attempts         float64 `json:"attempts"`
	PassingYards     float64 `json:"passing_yards"`
	PassingTDs       float64 `json:"passing_tds"`
	Interceptions    float64 `json:"interceptions"`
	Carries          float64 `json:"carries"`
	RushingYards     float64 `json:"rushing_yards"`
	RushingTDs       float64 `json:"rushing_tds"`
	Receptions       float64 `json:"receptions"`
	Targets          float64 `json:"targets"`
	ReceivingYards   float64 `json:"receiving_yards"`
	ReceivingTDs     float64 `json:"receiving_tds"`
	FantasyPoints    float64 `json:"fantasy_points"`
	FantasyPointsPPR float64 `json:"fantasy_points_ppr"`
	TotalYards       float64 `json:"total_yards"`
	TotalTDs         float64 `json:"total_tds"`
}

var teamFields = map[string]func(*TeamTotals) *float64{
	"completions":        func(t *TeamTotals) *float64 { return &t.Completions },
	"attempts":           func(t *TeamTotals) *float64 { return &t.Attempts },
	"passing_yards":      func(t *TeamTotals) *float64 { return &t.PassingYards },
	"passing_tds":        func(t *TeamTotals) *float64 { return &t.PassingTDs },
	"interceptions":      func(t *TeamTotals) *float64 { return &t.Interceptions },
	"carries":            func(t *TeamTotals) *float64 { return &t.Carries },
	"rushing_yards":      func(t *TeamTotals) *float64 { return &t.RushingYards },
	"rushing_tds":        func(t *TeamTotals) *float64 { return &t.RushingTDs },
	"receptions":         func(t *TeamTotals) *float64 { return &t.Receptions },
	"targets":            func(t *TeamTotals) *float64 { return &t.Targets },
	"receiving_yards":    func(t *TeamTotals) *float64 { return &t.ReceivingYards },
	"receiving_tds":      func(t *TeamTotals) *float64 { return &t.ReceivingTDs },
	"fantasy_points":     func(t *TeamTotals) *float64 { return &t.FantasyPoints },
	"fantasy_points_ppr": func(t *TeamTotals) *float64 { return &t.FantasyPointsPPR },
	"total_yards":        func(t *TeamTotals) *float64 { return &t.TotalYards },
	"total_tds":          func(t *TeamTotals) *float64 { return &t.TotalTDs },
}

// Value returns the named total. ok is false for unknown keys.
func (t *TeamTotals) Value(key string) (v float64, ok bool) {
	f, ok := teamFields[key]
	if !ok {
		return 0, false
	}
	return *f(t), true
}

// IsTeamStat reports whether key names a team total.
func IsTeamStat(key string) bool {
	_, ok := teamFields[key]
	return ok
}

// AggregatedTeam is the per-team season aggregate of its players.
type AggregatedTeam struct {
	TeamAbbr     string `json:"team_abbr"`
	TeamName     string `json:"team_name"`
	TeamNick     string `json:"team_nick"`
	TeamConf     string `json:"team_conf"`
	TeamDivision string `json:"team_division"`
	TeamColor    string `json:"team_color"`
	TeamColor2   string `json:"team_color2"`
	TeamLogo     string `json:"team_logo"`
	PlayerCount  int    `json:"player_count"`
	TeamTotals
}
