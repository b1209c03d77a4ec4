package stats

// Display formats for a stat.
const (
	FormatNumber  = "number"
	FormatPercent = "percent"
	FormatDecimal = "decimal"
)

// StatDef describes one selectable stat.
type StatDef struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Format string `json:"format"`
}

// StatCategory groups the stats shown on one leaderboard tab.
type StatCategory struct {
	ID           string    `json:"id"`
	Label        string    `json:"label"`
	DefaultStat  string    `json:"default_stat"`
	Stats        []StatDef `json:"stats"`
	TableColumns []string  `json:"table_columns"`
}

// StatCategories lists the leaderboard categories in display order.
var StatCategories = []StatCategory{
	{
		ID:          "passing",
		Label:       "Passing",
		DefaultStat: "passing_yards",
		Stats: []StatDef{
			{"passing_yards", "Passing Yards", FormatNumber},
			{"passing_tds", "Passing TDs", FormatNumber},
			{"completions", "Completions", FormatNumber},
			{"attempts", "Attempts", FormatNumber},
			{"interceptions", "Interceptions", FormatNumber},
		},
		TableColumns: []string{"player_name", "team", "completions", "attempts", "passing_yards", "passing_tds", "interceptions"},
	},
	{
		ID:          "rushing",
		Label:       "Rushing",
		DefaultStat: "rushing_yards",
		Stats: []StatDef{
			{"rushing_yards", "Rushing Yards", FormatNumber},
			{"rushing_tds", "Rushing TDs", FormatNumber},
			{"carries", "Carries", FormatNumber},
		},
		TableColumns: []string{"player_name", "team", "position", "carries", "rushing_yards", "rushing_tds"},
	},
	{
		ID:          "receiving",
		Label:       "Receiving",
		DefaultStat: "receiving_yards",
		Stats: []StatDef{
			{"receiving_yards", "Receiving Yards", FormatNumber},
			{"receiving_tds", "Receiving TDs", FormatNumber},
			{"receptions", "Receptions", FormatNumber},
			{"targets", "Targets", FormatNumber},
			{"tgt_sh", "Target Share", FormatPercent},
			{"wopr_x", "WOPR", FormatDecimal},
		},
		TableColumns: []string{"player_name", "team", "position", "targets", "receptions", "receiving_yards", "receiving_tds", "tgt_sh"},
	},
}

// TeamStats lists the team totals offered for team sorting.
var TeamStats = []StatDef{
	{"total_yards", "Total Yards", FormatNumber},
	{"total_tds", "Total TDs", FormatNumber},
	{"passing_yards", "Pass Yards", FormatNumber},
	{"passing_tds", "Pass TDs", FormatNumber},
	{"rushing_yards", "Rush Yards", FormatNumber},
	{"rushing_tds", "Rush TDs", FormatNumber},
	{"receiving_yards", "Rec Yards", FormatNumber},
	{"receiving_tds", "Rec TDs", FormatNumber},
	{"fantasy_points", "Fantasy Pts", FormatNumber},
}

// Category returns the category with id.
func Category(id string) (StatCategory, bool) {
	for _, c := range StatCategories {
		if c.ID == id {
			return c, true
		}
	}
	return StatCategory{}, false
}
