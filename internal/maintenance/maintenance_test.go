package maintenance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-lab/nfl-data/internal/cache"
	"github.com/gridiron-lab/nfl-data/internal/service"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeSeasons struct {
	invalidated []int
	fail        int
}

func (f *fakeSeasons) Invalidate(year int) { f.invalidated = append(f.invalidated, year) }

func (f *fakeSeasons) Season(_ context.Context, year int) (*service.Season, error) {
	if year == f.fail {
		return nil, errors.New("upstream down")
	}
	return &service.Season{Year: year}, nil
}

func TestRefreshSeasons(t *testing.T) {
	f := &fakeSeasons{}
	require.NoError(t, RefreshSeasons(context.Background(), f, []int{2023, 2024}, quiet))
	assert.Equal(t, []int{2023, 2024}, f.invalidated)

	f = &fakeSeasons{fail: 2023}
	err := RefreshSeasons(context.Background(), f, []int{2023, 2024}, quiet)
	assert.ErrorContains(t, err, "rebuild season 2023")
}

func TestStartRejectsBadSchedule(t *testing.T) {
	err := Start(context.Background(), Tasks{Refresh: func(context.Context) error { return nil }},
		Config{RefreshSchedule: "every tuesday"}, quiet)
	assert.ErrorContains(t, err, "REFRESH_SCHEDULE")
}

func TestStartRunsScheduleAndEviction(t *testing.T) {
	store := cache.NewMemory(true)
	store.Set(context.Background(), "stale", []byte("x"), time.Nanosecond)

	var refreshes atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Start(ctx, Tasks{
			Cache:   store,
			Refresh: func(context.Context) error { refreshes.Add(1); return nil },
		}, Config{EvictInterval: 10 * time.Millisecond, RefreshSchedule: "@every 1s"}, quiet)
	}()

	assert.Eventually(t, func() bool {
		return store.Stats(context.Background())["total_keys"] == 0 && refreshes.Load() > 0
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
