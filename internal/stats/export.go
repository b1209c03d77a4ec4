package stats

import (
	"fmt"
	"io"

	parquet "github.com/parquet-go/parquet-go"
)

// ExportRow is the flat parquet layout of an enriched player.
type ExportRow struct {
	PlayerID         string  `parquet:"player_id"`
	Season           int32   `parquet:"season"`
	PlayerName       string  `parquet:"player_name"`
	Position         string  `parquet:"position"`
	Team             string  `parquet:"team"`
	TeamName         string  `parquet:"team_name"`
	TeamConf         string  `parquet:"team_conf"`
	TeamDivision     string  `parquet:"team_division"`
	Games            float64 `parquet:"games"`
	Completions      float64 `parquet:"completions"`
	Attempts         float64 `parquet:"attempts"`
	PassingYards     float64 `parquet:"passing_yards"`
	PassingTDs       float64 `parquet:"passing_tds"`
	Interceptions    float64 `parquet:"interceptions"`
	Carries          float64 `parquet:"carries"`
	RushingYards     float64 `parquet:"rushing_yards"`
	RushingTDs       float64 `parquet:"rushing_tds"`
	Receptions       float64 `parquet:"receptions"`
	Targets          float64 `parquet:"targets"`
	ReceivingYards   float64 `parquet:"receiving_yards"`
	ReceivingTDs     float64 `parquet:"receiving_tds"`
	TargetShare      float64 `parquet:"target_share"`
	WoprX            float64 `parquet:"wopr_x"`
	FantasyPoints    float64 `parquet:"fantasy_points"`
	FantasyPointsPPR float64 `parquet:"fantasy_points_ppr"`
}

func exportRow(p *EnrichedPlayer) ExportRow {
	return ExportRow{
		PlayerID:         p.PlayerID,
		Season:           int32(p.Season),
		PlayerName:       p.PlayerName,
		Position:         p.Position,
		Team:             p.Team,
		TeamName:         p.TeamName,
		TeamConf:         p.TeamConf,
		TeamDivision:     p.TeamDivision,
		Games:            p.Games,
		Completions:      p.Completions,
		Attempts:         p.Attempts,
		PassingYards:     p.PassingYards,
		PassingTDs:       p.PassingTDs,
		Interceptions:    p.Interceptions,
		Carries:          p.Carries,
		RushingYards:     p.RushingYards,
		RushingTDs:       p.RushingTDs,
		Receptions:       p.Receptions,
		Targets:          p.Targets,
		ReceivingYards:   p.ReceivingYards,
		ReceivingTDs:     p.ReceivingTDs,
		TargetShare:      p.TargetShare,
		WoprX:            p.WoprX,
		FantasyPoints:    p.FantasyPoints,
		FantasyPointsPPR: p.FantasyPointsPPR,
	}
}

// WriteParquet writes players to w as a snappy-compressed parquet file.
func WriteParquet(w io.Writer, players []EnrichedPlayer) error {
	pw := parquet.NewWriter(w, parquet.SchemaOf(new(ExportRow)), parquet.Compression(&parquet.Snappy))
	for i := range players {
		if err := pw.Write(exportRow(&players[i])); err != nil {
			_ = pw.Close()
			return fmt.Errorf("write parquet row %d: %w", i, err)
		}
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
