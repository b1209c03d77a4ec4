package service

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/gridiron-lab/nfl-data/internal/dataset"
	"github.com/gridiron-lab/nfl-data/internal/stats"
)

// Datasets lists the dataset registry.
func (s *Service) Datasets() []dataset.Info {
	return dataset.All()
}

func (s *Service) datasetYears(info dataset.Info, years []int) ([]int, error) {
	if !info.SupportsYears {
		return nil, nil
	}
	if len(years) == 0 {
		years = s.opts.DefaultYears
	}
	years = slices.Clone(years)
	slices.Sort(years)
	years = slices.Compact(years)
	if info.MinYear != nil {
		for _, y := range years {
			if y < *info.MinYear {
				return nil, &InvalidYearError{DatasetID: info.ID, Year: y, MinYear: *info.MinYear}
			}
		}
	}
	return years, nil
}

// Schema returns the columns of a dataset as loaded for the default years.
func (s *Service) Schema(ctx context.Context, datasetID string) (dataset.Schema, error) {
	info, ok := dataset.Lookup(datasetID)
	if !ok {
		return dataset.Schema{}, fmt.Errorf("%w: %s", ErrDatasetNotFound, datasetID)
	}
	years, err := s.datasetYears(info, nil)
	if err != nil {
		return dataset.Schema{}, err
	}
	tbl, err := s.table(ctx, datasetID, years)
	if err != nil {
		return dataset.Schema{}, err
	}
	return tbl.Schema(datasetID), nil
}

// DataQuery selects a page of raw rows.
type DataQuery struct {
	Years   []int
	Columns []string
	Limit   int
	Offset  int
}

// Data returns a page of raw rows for the explorer.
func (s *Service) Data(ctx context.Context, datasetID string, q DataQuery) (dataset.Page, error) {
	info, ok := dataset.Lookup(datasetID)
	if !ok {
		return dataset.Page{}, fmt.Errorf("%w: %s", ErrDatasetNotFound, datasetID)
	}
	years, err := s.datasetYears(info, q.Years)
	if err != nil {
		return dataset.Page{}, err
	}
	tbl, err := s.table(ctx, datasetID, years)
	if err != nil {
		return dataset.Page{}, err
	}
	return tbl.Page(datasetID, q.Columns, q.Limit, q.Offset), nil
}

// Players filters, sorts and pages the enriched players of a season.
func (s *Service) Players(ctx context.Context, year int, q stats.PlayerQuery) (stats.PlayerPage, error) {
	season, err := s.Season(ctx, year)
	if err != nil {
		return stats.PlayerPage{}, err
	}
	page := stats.QueryPlayers(season.Players, q)
	page.Year = season.Year
	return page, nil
}

// TeamAggregates is the response of a team aggregate query.
type TeamAggregates struct {
	Year  int                    `json:"year"`
	Teams []stats.AggregatedTeam `json:"teams"`
}

// TeamAggregates returns the season's team aggregates, optionally for a
// single team and sorted by a team stat.
func (s *Service) TeamAggregates(ctx context.Context, year int, team, sortBy string) (TeamAggregates, error) {
	season, err := s.Season(ctx, year)
	if err != nil {
		return TeamAggregates{}, err
	}
	teams := season.Aggregates
	if team != "" {
		teams = slices.DeleteFunc(slices.Clone(teams), func(t stats.AggregatedTeam) bool {
			return t.TeamAbbr != team
		})
	}
	if sortBy != "" {
		teams = stats.SortTeams(teams, sortBy)
	}
	return TeamAggregates{Year: season.Year, Teams: teams}, nil
}

// TeamsMeta returns the franchise identity list.
func (s *Service) TeamsMeta(ctx context.Context) ([]stats.TeamMeta, error) {
	tbl, err := s.table(ctx, dataset.Teams, nil)
	if err != nil {
		return nil, err
	}
	return stats.TeamList(tbl), nil
}

// Leaders is the response of a leaders query.
type Leaders struct {
	Year     int                            `json:"year"`
	Position string                         `json:"position,omitempty"`
	Leaders  map[string][]stats.LeaderEntry `json:"leaders"`
}

// Leaders ranks the season's players for each stat. Unknown stats are
// skipped.
func (s *Service) Leaders(ctx context.Context, year int, statKeys []string, position string, limit int) (Leaders, error) {
	season, err := s.Season(ctx, year)
	if err != nil {
		return Leaders{}, err
	}
	if len(statKeys) == 0 {
		statKeys = stats.DefaultLeaderStats
	}
	players := season.Players
	if position != "" {
		players = stats.QueryPlayers(players, stats.PlayerQuery{Position: position, Limit: len(players) + 1}).Data
	}
	out := Leaders{Year: season.Year, Position: position, Leaders: make(map[string][]stats.LeaderEntry)}
	for _, key := range statKeys {
		if !stats.IsPlayerStat(key) {
			continue
		}
		out.Leaders[key] = stats.Leaders(players, key, limit)
	}
	return out, nil
}

// TeamDetail returns one team with its roster ranked by sortBy.
func (s *Service) TeamDetail(ctx context.Context, year int, abbr, sortBy string) (stats.TeamView, error) {
	season, err := s.Season(ctx, year)
	if err != nil {
		return stats.TeamView{}, err
	}
	team, ok := stats.FindTeam(season.Aggregates, abbr)
	if !ok {
		return stats.TeamView{}, fmt.Errorf("%w: %s", ErrTeamNotFound, abbr)
	}
	if sortBy == "" {
		sortBy = "fantasy_points_ppr"
	}
	return stats.BuildTeamView(team, season.Players, sortBy), nil
}

// PlayerDetail returns one player with a comparison against position peers.
func (s *Service) PlayerDetail(ctx context.Context, year int, playerID, sortBy string) (stats.PlayerView, error) {
	season, err := s.Season(ctx, year)
	if err != nil {
		return stats.PlayerView{}, err
	}
	player, ok := stats.FindPlayer(season.Players, playerID)
	if !ok {
		return stats.PlayerView{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}
	if sortBy == "" {
		sortBy = defaultStatFor(player.Position)
	}
	return stats.BuildPlayerView(player, season.Players, sortBy), nil
}

func defaultStatFor(position string) string {
	switch position {
	case "QB":
		return "passing_yards"
	case "RB", "FB":
		return "rushing_yards"
	case "WR", "TE":
		return "receiving_yards"
	default:
		return "fantasy_points_ppr"
	}
}

// League is the conference and division grid of a season.
type League struct {
	Year        int                `json:"year"`
	Conferences []stats.Conference `json:"conferences"`
}

// League returns the season's teams arranged by conference and division.
func (s *Service) League(ctx context.Context, year int) (League, error) {
	season, err := s.Season(ctx, year)
	if err != nil {
		return League{}, err
	}
	return League{Year: season.Year, Conferences: stats.LeagueGrid(season.Aggregates)}, nil
}

// ExportPlayers writes the season's enriched players as parquet.
func (s *Service) ExportPlayers(ctx context.Context, year int, w io.Writer) (int, error) {
	season, err := s.Season(ctx, year)
	if err != nil {
		return 0, err
	}
	if err := stats.WriteParquet(w, season.Players); err != nil {
		return 0, err
	}
	return len(season.Players), nil
}
