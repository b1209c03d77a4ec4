package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-lab/nfl-data/internal/dataset"
	"github.com/gridiron-lab/nfl-data/internal/store"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeSource struct {
	fail map[string]bool
}

func (f *fakeSource) Fetch(_ context.Context, id string, years []int) (*dataset.Table, error) {
	if f.fail[id] {
		return nil, errors.New("boom")
	}
	if id == dataset.Teams {
		return dataset.FromRecords([]string{"team_abbr"}, [][]string{{"KC"}, {"BUF"}}), nil
	}
	if len(years) != 1 {
		return nil, errors.New("want exactly one season")
	}
	return dataset.FromRecords([]string{"player_id", "season"}, [][]string{{"00-1", "2024"}}), nil
}

type fakeWriter struct {
	mu       sync.Mutex
	replaced map[string]int64
	events   []store.RefreshEvent
	runs     []store.SeedRun
}

func newFakeWriter() *fakeWriter { return &fakeWriter{replaced: map[string]int64{}} }

func (w *fakeWriter) ReplaceDataset(_ context.Context, id string, season int, tbl *dataset.Table) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.replaced[fmt.Sprintf("%s:%d", id, season)] = int64(len(tbl.Rows))
	return int64(len(tbl.Rows)), nil
}

func (w *fakeWriter) NotifyRefreshed(_ context.Context, ev store.RefreshEvent) error {
	w.events = append(w.events, ev)
	return nil
}

func (w *fakeWriter) RecordSeedRun(_ context.Context, run store.SeedRun) error {
	w.runs = append(w.runs, run)
	return nil
}

func TestJobs(t *testing.T) {
	got := jobs([]int{1998, 2024})
	assert.ElementsMatch(t, []job{
		{dataset.Seasonal, 2024},
		{dataset.Rosters, 1998},
		{dataset.Rosters, 2024},
		{dataset.Teams, store.TeamsSeason},
	}, got)
}

func TestSeasonsWritesEveryTable(t *testing.T) {
	w := newFakeWriter()
	res := Seasons(context.Background(), &fakeSource{}, w, []int{2024, 2023, 2024}, 3, quiet)

	assert.True(t, res.OK())
	assert.Equal(t, 5, res.TablesWritten)
	assert.Equal(t, int64(6), res.RowsWritten)
	assert.Equal(t, int64(2), w.replaced["teams:0"])
	assert.Contains(t, w.replaced, "seasonal:2023")

	require.Len(t, w.runs, 1)
	assert.Equal(t, []int{2023, 2024}, w.runs[0].Seasons)
	assert.Equal(t, res.RunID, w.runs[0].ID)

	require.Len(t, w.events, 1)
	assert.Equal(t, []string{"rosters", "seasonal", "teams"}, w.events[0].Datasets)
}

func TestSeasonsKeepsGoingAfterFailure(t *testing.T) {
	w := newFakeWriter()
	res := Seasons(context.Background(), &fakeSource{fail: map[string]bool{dataset.Seasonal: true}}, w, []int{2024}, 2, quiet)

	assert.False(t, res.OK())
	assert.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "seasonal 2024: fetch")
	assert.Equal(t, 2, res.TablesWritten)
	require.Len(t, w.events, 1)
	assert.Equal(t, []string{"rosters", "teams"}, w.events[0].Datasets)
}

func TestSeasonsNothingWrittenSkipsNotify(t *testing.T) {
	w := newFakeWriter()
	src := &fakeSource{fail: map[string]bool{dataset.Seasonal: true, dataset.Rosters: true, dataset.Teams: true}}
	res := Seasons(context.Background(), src, w, []int{2024}, 4, quiet)

	assert.Len(t, res.Errors, 3)
	assert.Empty(t, w.events)
	assert.Len(t, w.runs, 1)
}
