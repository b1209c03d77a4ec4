package seed

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gridiron-lab/nfl-data/internal/dataset"
	"github.com/gridiron-lab/nfl-data/internal/store"
)

// Writer persists fetched tables. *store.Store implements it.
type Writer interface {
	ReplaceDataset(ctx context.Context, datasetID string, season int, tbl *dataset.Table) (int64, error)
	NotifyRefreshed(ctx context.Context, ev store.RefreshEvent) error
	RecordSeedRun(ctx context.Context, run store.SeedRun) error
}

type job struct {
	datasetID string
	season    int
}

// jobs lists one job per (year-scoped dataset, season) plus the teams table
// once, stored under store.TeamsSeason.
func jobs(seasons []int) []job {
	var out []job
	for _, info := range dataset.All() {
		if !info.SupportsYears {
			out = append(out, job{info.ID, store.TeamsSeason})
			continue
		}
		for _, s := range seasons {
			if info.MinYear != nil && s < *info.MinYear {
				continue
			}
			out = append(out, job{info.ID, s})
		}
	}
	return out
}

// Seasons fetches every dataset for seasons from src and replaces the stored
// copy. Work is spread over a pool of workers; one failing table does not
// stop the others. The run is recorded and, when anything was written,
// listeners are notified on the refresh channel.
func Seasons(ctx context.Context, src dataset.Source, w Writer, seasons []int, workers int, logger *slog.Logger) SeedResult {
	started := time.Now()
	result := SeedResult{RunID: uuid.NewString()}

	seasons = slices.Clone(seasons)
	slices.Sort(seasons)
	seasons = slices.Compact(seasons)

	work := jobs(seasons)
	if workers < 1 {
		workers = 1
	}
	if workers > len(work) {
		workers = len(work)
	}

	ch := make(chan job, len(work))
	for _, j := range work {
		ch <- j
	}
	close(ch)

	var mu sync.Mutex
	var wg sync.WaitGroup
	written := make(map[string]bool)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range ch {
				r := seedOne(ctx, src, w, j, logger)

				mu.Lock()
				result.Add(r)
				if r.TablesWritten > 0 {
					written[j.datasetID] = true
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	result.Duration = time.Since(started)

	run := store.SeedRun{
		ID:          result.RunID,
		StartedAt:   started,
		FinishedAt:  started.Add(result.Duration),
		Seasons:     seasons,
		RowsWritten: result.RowsWritten,
		Errors:      result.Errors,
	}
	if err := w.RecordSeedRun(ctx, run); err != nil {
		logger.Warn("Failed to record seed run", "run", result.RunID, "error", err)
	}

	if len(written) > 0 {
		ids := make([]string, 0, len(written))
		for id := range written {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		ev := store.RefreshEvent{RunID: result.RunID, Datasets: ids, Seasons: seasons}
		if err := w.NotifyRefreshed(ctx, ev); err != nil {
			result.AddErrorf("notify: %v", err)
		}
	}

	logger.Info("Seed run complete", "summary", result.Summary(), "duration", result.Duration.Round(time.Millisecond))
	return result
}

func seedOne(ctx context.Context, src dataset.Source, w Writer, j job, logger *slog.Logger) SeedResult {
	var r SeedResult

	var years []int
	if j.season != store.TeamsSeason {
		years = []int{j.season}
	}
	tbl, err := src.Fetch(ctx, j.datasetID, years)
	if err != nil {
		r.AddErrorf("%s %d: fetch: %v", j.datasetID, j.season, err)
		return r
	}
	if len(tbl.Rows) == 0 {
		logger.Warn("Upstream returned no rows; keeping stored copy", "dataset", j.datasetID, "season", j.season)
		return r
	}

	n, err := w.ReplaceDataset(ctx, j.datasetID, j.season, tbl)
	if err != nil {
		r.AddErrorf("%s %d: store: %v", j.datasetID, j.season, err)
		return r
	}
	r.TablesWritten = 1
	r.RowsWritten = n
	return r
}
