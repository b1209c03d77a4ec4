package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-lab/nfl-data/internal/dataset"
	"github.com/gridiron-lab/nfl-data/internal/stats"
)

type fakeSource struct {
	calls atomic.Int32
	delay time.Duration
	block chan struct{} // when set, fetches wait for it to close
	err   error
}

func (f *fakeSource) Fetch(ctx context.Context, datasetID string, years []int) (*dataset.Table, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	switch datasetID {
	case dataset.Seasonal:
		return dataset.FromRecords(
			[]string{"player_id", "season", "passing_yards", "rushing_yards", "receiving_yards", "fantasy_points_ppr"},
			[][]string{
				{"qb1", "2024", "4000", "200", "", "300"},
				{"rb1", "2024", "", "1100", "300", "220"},
				{"wr1", "2024", "", "", "1400", "260"},
				{"rb2", "2024", "", "600", "50", "90"},
			},
		), nil
	case dataset.Rosters:
		return dataset.FromRecords(
			[]string{"player_id", "player_name", "position", "team"},
			[][]string{
				{"qb1", "Quinn Back", "QB", "KC"},
				{"rb1", "Ron Back", "RB", "KC"},
				{"wr1", "Wes Out", "WR", "PHI"},
				{"rb2", "Rob Two", "RB", "PHI"},
			},
		), nil
	case dataset.Teams:
		return dataset.FromRecords(
			[]string{"team_abbr", "team_name", "team_conf", "team_division", "team_color", "team_logo_espn"},
			[][]string{
				{"KC", "Kansas City Chiefs", "AFC", "AFC West", "#E31837", "kc.png"},
				{"PHI", "Philadelphia Eagles", "NFC", "NFC East", "#004C54", "phi.png"},
			},
		), nil
	}
	return nil, &dataset.UnknownDatasetError{ID: datasetID}
}

func newService(t *testing.T, src dataset.Source) *Service {
	t.Helper()
	svc, err := New(src, Options{CurrentSeason: 2024, DefaultYears: []int{2023, 2024}}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return svc
}

func TestPlayersUsesCurrentSeason(t *testing.T) {
	svc := newService(t, &fakeSource{})
	page, err := svc.Players(context.Background(), 0, stats.PlayerQuery{SortBy: "fantasy_points_ppr"})
	require.NoError(t, err)
	assert.Equal(t, 2024, page.Year)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, "qb1", page.Data[0].PlayerID)
	assert.Equal(t, []string{"QB", "RB", "WR"}, page.AvailablePositions)
}

func TestSeasonIsMemoised(t *testing.T) {
	src := &fakeSource{delay: 10 * time.Millisecond}
	svc := newService(t, src)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Season(context.Background(), 2024)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(3), src.calls.Load())

	_, err := svc.TeamsMeta(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), src.calls.Load(), "teams table reused")

	svc.ClearCache()
	assert.Equal(t, map[string]int{"raw_tables": 0, "seasons": 0}, svc.CacheStats())
	_, err = svc.Season(context.Background(), 2024)
	require.NoError(t, err)
	assert.Equal(t, int32(6), src.calls.Load())
}

func TestInvalidateDropsSeason(t *testing.T) {
	src := &fakeSource{}
	svc := newService(t, src)
	ctx := context.Background()

	_, err := svc.Season(ctx, 2024)
	require.NoError(t, err)
	_, err = svc.Data(ctx, dataset.Seasonal, DataQuery{Years: []int{2022}, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 4, svc.CacheStats()["raw_tables"])

	svc.Invalidate(2024)
	assert.Equal(t, map[string]int{"raw_tables": 1, "seasons": 0}, svc.CacheStats())
}

func TestTeamAggregates(t *testing.T) {
	svc := newService(t, &fakeSource{})
	ctx := context.Background()

	all, err := svc.TeamAggregates(ctx, 2024, "", "total_yards")
	require.NoError(t, err)
	require.Len(t, all.Teams, 2)
	assert.Equal(t, "KC", all.Teams[0].TeamAbbr)
	assert.Equal(t, 5600.0, all.Teams[0].TotalYards)
	assert.Equal(t, "kc.png", all.Teams[0].TeamLogo)

	one, err := svc.TeamAggregates(ctx, 2024, "PHI", "")
	require.NoError(t, err)
	require.Len(t, one.Teams, 1)
	assert.Equal(t, 2, one.Teams[0].PlayerCount)

	season, err := svc.Season(ctx, 2024)
	require.NoError(t, err)
	assert.Len(t, season.Aggregates, 2, "filter must not modify the cached season")
}

func TestDataAndSchema(t *testing.T) {
	svc := newService(t, &fakeSource{})
	ctx := context.Background()

	page, err := svc.Data(ctx, dataset.Rosters, DataQuery{Columns: []string{"player_name", "nope"}, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"player_name"}, page.Columns)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 4, page.TotalRows)

	_, err = svc.Data(ctx, dataset.Seasonal, DataQuery{Years: []int{1990}})
	var yearErr *InvalidYearError
	require.ErrorAs(t, err, &yearErr)
	assert.Equal(t, 1999, yearErr.MinYear)

	_, err = svc.Data(ctx, "games", DataQuery{})
	assert.ErrorIs(t, err, ErrDatasetNotFound)

	schema, err := svc.Schema(ctx, dataset.Teams)
	require.NoError(t, err)
	assert.Equal(t, 6, schema.TotalColumns)
}

func TestDetailsAndLeague(t *testing.T) {
	svc := newService(t, &fakeSource{})
	ctx := context.Background()

	view, err := svc.TeamDetail(ctx, 2024, "KC", "")
	require.NoError(t, err)
	assert.Equal(t, "qb1", view.Players[0].PlayerID)

	_, err = svc.TeamDetail(ctx, 2024, "NYJ", "")
	assert.ErrorIs(t, err, ErrTeamNotFound)

	pv, err := svc.PlayerDetail(ctx, 2024, "rb2", "")
	require.NoError(t, err)
	assert.Equal(t, "rushing_yards", pv.SortBy)
	require.Len(t, pv.Comparison, 2)
	assert.Equal(t, "rb1", pv.Comparison[0].PlayerID)
	assert.True(t, pv.Comparison[1].IsTarget)

	_, err = svc.PlayerDetail(ctx, 2024, "missing", "")
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	league, err := svc.League(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, league.Conferences, 2)
	assert.Equal(t, "AFC", league.Conferences[0].Name)
	assert.Equal(t, "West", league.Conferences[0].Divisions[0].Name)

	leaders, err := svc.Leaders(ctx, 2024, []string{"rushing_yards", "bogus"}, "RB", 1)
	require.NoError(t, err)
	require.Len(t, leaders.Leaders, 1)
	assert.Equal(t, "rb1", leaders.Leaders["rushing_yards"][0].PlayerID)
}

func TestUpstreamErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	svc := newService(t, &fakeSource{err: boom})
	_, err := svc.Players(context.Background(), 2024, stats.PlayerQuery{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, svc.CacheStats()["seasons"])
}

func TestExportPlayers(t *testing.T) {
	svc := newService(t, &fakeSource{})
	var buf bytes.Buffer
	n, err := svc.ExportPlayers(context.Background(), 2024, &buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.NotZero(t, buf.Len())
}

func TestCancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	src := &fakeSource{block: make(chan struct{})}
	svc := newService(t, src)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := svc.Players(ctxA, 2024, stats.PlayerQuery{})
		errA <- err
	}()
	require.Eventually(t, func() bool { return src.calls.Load() == 3 }, time.Second, time.Millisecond)

	type result struct {
		page stats.PlayerPage
		err  error
	}
	resB := make(chan result, 1)
	go func() {
		page, err := svc.Players(context.Background(), 2024, stats.PlayerQuery{})
		resB <- result{page, err}
	}()

	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	close(src.block)
	b := <-resB
	require.NoError(t, b.err)
	assert.Equal(t, 4, b.page.Total)
	assert.Equal(t, 1, svc.CacheStats()["seasons"])
	assert.Equal(t, int32(3), src.calls.Load())
}

func TestInvalidateDuringLoadIsNotUndone(t *testing.T) {
	src := &fakeSource{block: make(chan struct{})}
	svc := newService(t, src)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Season(ctx, 2024)
		done <- err
	}()
	require.Eventually(t, func() bool { return src.calls.Load() == 3 }, time.Second, time.Millisecond)

	svc.Invalidate(2024)
	close(src.block)
	require.NoError(t, <-done)
	assert.Equal(t, map[string]int{"raw_tables": 0, "seasons": 0}, svc.CacheStats())

	_, err := svc.Season(ctx, 2024)
	require.NoError(t, err)
	assert.Equal(t, int32(6), src.calls.Load())
	assert.Equal(t, 1, svc.CacheStats()["seasons"])
}

func TestSeasonBeforeFirstSeasonalYear(t *testing.T) {
	src := &fakeSource{}
	svc := newService(t, src)

	_, err := svc.Players(context.Background(), 1950, stats.PlayerQuery{})
	var yearErr *InvalidYearError
	require.ErrorAs(t, err, &yearErr)
	assert.Equal(t, 1999, yearErr.MinYear)
	assert.Equal(t, int32(0), src.calls.Load())
}
