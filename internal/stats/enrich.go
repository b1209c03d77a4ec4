package stats

// Enrich joins season records to the roster (inner join on player_id) and
// to team identity (left join on team abbreviation). Records without a
// roster entry, or whose roster entry has no name, are dropped. Output keeps
// the order of records.
func Enrich(records []PlayerSeasonRecord, roster map[string]RosterEntry, teams map[string]TeamMeta) []EnrichedPlayer {
	out := make([]EnrichedPlayer, 0, len(records))
	for _, rec := range records {
		entry, ok := roster[rec.PlayerID]
		if !ok || entry.PlayerName == "" {
			continue
		}

		p := EnrichedPlayer{
			PlayerID:    rec.PlayerID,
			Season:      rec.Season,
			PlayerName:  entry.PlayerName,
			Position:    entry.Position,
			Team:        entry.Team,
			HeadshotURL: entry.HeadshotURL,
			SeasonStats: rec.SeasonStats,
		}
		if meta, ok := teams[entry.Team]; ok {
			p.TeamMeta = meta
		}
		out = append(out, p)
	}
	return out
}
