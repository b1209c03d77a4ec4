package nflverse

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-lab/nfl-data/internal/dataset"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls map[string]int
	errs  int
}

func (o *recordingObserver) ObserveFetch(datasetID string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.calls == nil {
		o.calls = map[string]int{}
	}
	o.calls[datasetID]++
	if err != nil {
		o.errs++
	}
}

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/seasonal/2023.csv", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "player_id,season,season_type,passing_yards\n00-1,2023,REG,4183\n00-1,2023,POST,800\n")
	})
	mux.HandleFunc("/seasonal/2024.csv", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "player_id,season,season_type,passing_yards,wopr\n00-1,2024,REG,3928,0.1\n")
	})
	mux.HandleFunc("/rosters/2024.csv", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "nfl-data")
		fmt.Fprint(w, "season,team,position,full_name,gsis_id\n2024,KC,QB,Patrick Mahomes,00-1\n")
	})
	mux.HandleFunc("/teams.csv", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "team_abbr,team_name,team_conf\nKC,Kansas City Chiefs,AFC\n")
	})
	return httptest.NewServer(mux)
}

func newTestSource(srv *httptest.Server, obs Observer) *Source {
	client := NewClient(5*time.Second, 6000, nil)
	return NewSource(client, SourceConfig{
		SeasonalURL:  srv.URL + "/seasonal/{season}.csv",
		RostersURL:   srv.URL + "/rosters/{season}.csv",
		TeamsURL:     srv.URL + "/teams.csv",
		SeasonType:   "REG",
		DefaultYears: []int{2024},
	}, obs, nil)
}

func TestFetchSeasonalMergesYearsAndFiltersSeasonType(t *testing.T) {
	srv := newUpstream(t)
	defer srv.Close()
	obs := &recordingObserver{}
	src := newTestSource(srv, obs)

	tbl, err := src.Fetch(context.Background(), dataset.Seasonal, []int{2024, 2023, 2024})
	require.NoError(t, err)

	assert.Equal(t, []string{"player_id", "season", "season_type", "passing_yards", "wopr"}, tbl.ColumnNames())
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, int64(2023), tbl.Rows[0]["season"])
	assert.Equal(t, int64(4183), tbl.Rows[0]["passing_yards"])
	assert.Equal(t, int64(2024), tbl.Rows[1]["season"])
	assert.Nil(t, tbl.Rows[0]["wopr"])
	assert.Equal(t, 2, obs.calls[dataset.Seasonal])
}

func TestFetchUsesDefaultYears(t *testing.T) {
	srv := newUpstream(t)
	defer srv.Close()
	src := newTestSource(srv, nil)

	tbl, err := src.Fetch(context.Background(), dataset.Rosters, nil)
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "Patrick Mahomes", tbl.Rows[0]["full_name"])
}

func TestFetchTeamsIgnoresYears(t *testing.T) {
	srv := newUpstream(t)
	defer srv.Close()
	src := newTestSource(srv, nil)

	tbl, err := src.Fetch(context.Background(), dataset.Teams, []int{1999})
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "KC", tbl.Rows[0]["team_abbr"])
}

func TestFetchUpstreamFailure(t *testing.T) {
	srv := newUpstream(t)
	defer srv.Close()
	obs := &recordingObserver{}
	src := newTestSource(srv, obs)

	_, err := src.Fetch(context.Background(), dataset.Rosters, []int{1990})
	require.Error(t, err)

	var upErr *UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, http.StatusNotFound, upErr.StatusCode)
	assert.Equal(t, dataset.Rosters, upErr.Dataset)
	assert.Equal(t, 1, obs.errs)
}

func TestFetchUnknownDataset(t *testing.T) {
	src := NewSource(NewClient(time.Second, 60, nil), SourceConfig{}, nil, nil)

	_, err := src.Fetch(context.Background(), "pbp", nil)
	var unknown *dataset.UnknownDatasetError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "pbp", unknown.ID)
}

func TestSeasonURL(t *testing.T) {
	assert.Equal(t, "https://x/roster_2022.csv", seasonURL("https://x/roster_{season}.csv", 2022))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate([]byte("abc"), 5))
	assert.Equal(t, "ab...", truncate([]byte("abcdef"), 2))
}
