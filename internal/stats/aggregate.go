package stats

import (
	"slices"
	"strings"
)

// Fallback colors for teams missing from the team descriptions.
const (
	DefaultTeamColor  = "#6b7280"
	DefaultTeamColor2 = "#374151"
)

// AggregateTeams groups players by team and sums SumKeys. Players without a
// team are skipped. The result is ordered by team abbreviation.
func AggregateTeams(players []EnrichedPlayer, teams map[string]TeamMeta) []AggregatedTeam {
	byTeam := make(map[string]*AggregatedTeam)
	for i := range players {
		p := &players[i]
		if p.Team == "" {
			continue
		}
		agg, ok := byTeam[p.Team]
		if !ok {
			agg = newAggregate(p.Team, teams)
			byTeam[p.Team] = agg
		}
		agg.PlayerCount++
		for _, key := range SumKeys {
			*teamFields[key](&agg.TeamTotals) += p.Stat(key)
		}
	}

	out := make([]AggregatedTeam, 0, len(byTeam))
	for _, agg := range byTeam {
		t := &agg.TeamTotals
		t.TotalYards = t.PassingYards + t.RushingYards + t.ReceivingYards
		t.TotalTDs = t.PassingTDs + t.RushingTDs + t.ReceivingTDs
		out = append(out, *agg)
	}
	slices.SortFunc(out, func(a, b AggregatedTeam) int {
		return strings.Compare(a.TeamAbbr, b.TeamAbbr)
	})
	return out
}

func newAggregate(abbr string, teams map[string]TeamMeta) *AggregatedTeam {
	agg := &AggregatedTeam{
		TeamAbbr:   abbr,
		TeamColor:  DefaultTeamColor,
		TeamColor2: DefaultTeamColor2,
	}
	meta, ok := teams[abbr]
	if !ok {
		return agg
	}
	agg.TeamName = meta.TeamName
	agg.TeamNick = meta.TeamNick
	agg.TeamConf = meta.TeamConf
	agg.TeamDivision = meta.TeamDivision
	agg.TeamLogo = meta.TeamLogoESPN
	if meta.TeamColor != "" {
		agg.TeamColor = meta.TeamColor
	}
	if meta.TeamColor2 != "" {
		agg.TeamColor2 = meta.TeamColor2
	}
	return agg
}

// FindTeam returns the aggregate for abbr.
func FindTeam(teams []AggregatedTeam, abbr string) (AggregatedTeam, bool) {
	for _, t := range teams {
		if t.TeamAbbr == abbr {
			return t, true
		}
	}
	return AggregatedTeam{}, false
}

// SortTeams returns a copy of teams ordered by stat, descending. Unknown
// stats leave the order unchanged.
func SortTeams(teams []AggregatedTeam, stat string) []AggregatedTeam {
	out := slices.Clone(teams)
	if !IsTeamStat(stat) {
		return out
	}
	slices.SortStableFunc(out, func(a, b AggregatedTeam) int {
		av, _ := a.Value(stat)
		bv, _ := b.Value(stat)
		return compareDesc(av, bv)
	})
	return out
}

func compareDesc(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
