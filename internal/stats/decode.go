package stats

import "github.com/gridiron-lab/nfl-data/internal/dataset"

// Column aliases for newer nflverse assets that renamed a few fields.
var columnAliases = map[string][]string{
	"player_id":     {"gsis_id"},
	"player_name":   {"full_name"},
	"interceptions": {"passing_interceptions"},
	"wopr_x":        {"wopr"},
	"team":          {"recent_team"},
}

func lookup(row dataset.Row, key string) any {
	if v, ok := row[key]; ok && v != nil {
		return v
	}
	for _, alt := range columnAliases[key] {
		if v, ok := row[alt]; ok && v != nil {
			return v
		}
	}
	return nil
}

// SeasonRecords converts seasonal rows. Rows without a player_id are skipped.
func SeasonRecords(tbl *dataset.Table) []PlayerSeasonRecord {
	if tbl == nil {
		return nil
	}
	out := make([]PlayerSeasonRecord, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		id := Text(lookup(row, "player_id"))
		if id == "" {
			continue
		}
		rec := PlayerSeasonRecord{PlayerID: id, Season: int(Number(row["season"]))}
		for key, field := range seasonFields {
			*field(&rec.SeasonStats) = Number(lookup(row, key))
		}
		out = append(out, rec)
	}
	return out
}

// RosterIndex converts roster rows keyed by player_id. The first row seen for
// a player wins.
func RosterIndex(tbl *dataset.Table) map[string]RosterEntry {
	index := make(map[string]RosterEntry)
	if tbl == nil {
		return index
	}
	for _, row := range tbl.Rows {
		id := Text(lookup(row, "player_id"))
		if id == "" {
			continue
		}
		if _, dup := index[id]; dup {
			continue
		}
		index[id] = RosterEntry{
			PlayerID:    id,
			PlayerName:  Text(lookup(row, "player_name")),
			Position:    Text(row["position"]),
			Team:        Text(row["team"]),
			HeadshotURL: Text(row["headshot_url"]),
		}
	}
	return index
}

// TeamList converts team description rows in upstream order, dropping rows
// without an abbreviation and repeated abbreviations.
func TeamList(tbl *dataset.Table) []TeamMeta {
	if tbl == nil {
		return nil
	}
	seen := make(map[string]bool, len(tbl.Rows))
	out := make([]TeamMeta, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		abbr := Text(row["team_abbr"])
		if abbr == "" || seen[abbr] {
			continue
		}
		seen[abbr] = true
		out = append(out, TeamMeta{
			TeamAbbr:     abbr,
			TeamName:     Text(row["team_name"]),
			TeamNick:     Text(row["team_nick"]),
			TeamConf:     Text(row["team_conf"]),
			TeamDivision: Text(row["team_division"]),
			TeamColor:    Text(row["team_color"]),
			TeamColor2:   Text(row["team_color2"]),
			TeamLogoESPN: Text(row["team_logo_espn"]),
		})
	}
	return out
}

// TeamIndex keys teams by abbreviation.
func TeamIndex(teams []TeamMeta) map[string]TeamMeta {
	index := make(map[string]TeamMeta, len(teams))
	for _, t := range teams {
		index[t.TeamAbbr] = t
	}
	return index
}
