package store

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-lab/nfl-data/internal/config"
	"github.com/gridiron-lab/nfl-data/internal/dataset"
	"github.com/gridiron-lab/nfl-data/internal/db"
)

func TestRowRoundTripKeepsColumnTypes(t *testing.T) {
	cols := []dataset.Column{
		{Name: "player_id", Type: dataset.TypeString, DType: "object"},
		{Name: "games", Type: dataset.TypeInteger, DType: "int64"},
		{Name: "wopr", Type: dataset.TypeNumber, DType: "float64"},
		{Name: "active", Type: dataset.TypeBoolean, DType: "bool"},
		{Name: "missing", Type: dataset.TypeString, DType: "object"},
	}
	raw, err := encodeRow(dataset.Row{
		"player_id": "00-1",
		"games":     int64(17),
		"wopr":      0.5,
		"active":    true,
		"bad":       math.Inf(1),
	})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"bad":null`)

	row, err := decodeRow(raw, cols)
	require.NoError(t, err)
	assert.Equal(t, "00-1", row["player_id"])
	assert.Equal(t, int64(17), row["games"])
	assert.Equal(t, 0.5, row["wopr"])
	assert.Equal(t, true, row["active"])
	assert.Nil(t, row["missing"])
	assert.NotContains(t, row, "bad")
}

func TestSeasonsFor(t *testing.T) {
	s := New(nil, []int{2024, 2023}, nil)
	teams, _ := dataset.Lookup(dataset.Teams)
	assert.Equal(t, []int{TeamsSeason}, s.seasonsFor(teams, []int{2020}))

	seasonal, _ := dataset.Lookup(dataset.Seasonal)
	assert.Equal(t, []int{2023, 2024}, s.seasonsFor(seasonal, nil))
	assert.Equal(t, []int{2021, 2022}, s.seasonsFor(seasonal, []int{2022, 2021, 2022}))
}

// TestStoreAgainstPostgres needs a scratch database.
func TestStoreAgainstPostgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := db.New(ctx, &config.Config{DatabaseURL: url, DBPoolMinConns: 1, DBPoolMaxConns: 4, DBPoolMaxLife: time.Minute})
	require.NoError(t, err)
	defer pool.Close()

	s := New(pool, []int{2024}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, s.Ping(ctx))

	csv := "player_id,player_name,games\n00-1,Pat,17\n00-2,Travis,16\n"
	tbl, err := dataset.ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)

	n, err := s.ReplaceDataset(ctx, dataset.Rosters, 2024, tbl)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	// Replacing again must not duplicate rows.
	_, err = s.ReplaceDataset(ctx, dataset.Rosters, 2024, tbl)
	require.NoError(t, err)

	got, err := s.Fetch(ctx, dataset.Rosters, nil)
	require.NoError(t, err)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, int64(17), got.Rows[0]["games"])
	assert.Equal(t, tbl.Columns, got.Columns)

	seasons, err := s.Seasons(ctx, dataset.Rosters)
	require.NoError(t, err)
	assert.Contains(t, seasons, 2024)

	_, err = s.Fetch(ctx, dataset.Rosters, []int{1921})
	assert.ErrorIs(t, err, dataset.ErrNoData)

	require.NoError(t, s.NotifyRefreshed(ctx, RefreshEvent{RunID: "test", Datasets: []string{dataset.Rosters}, Seasons: []int{2024}}))
	require.NoError(t, s.RecordSeedRun(ctx, SeedRun{
		ID:         uuid.NewString(),
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		Seasons:    []int{2024},
	}))
}
