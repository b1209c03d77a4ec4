// Package service answers the dashboard's queries. It memoises raw dataset
// tables and enriched seasons in bounded LRU caches and collapses concurrent
// loads of the same key.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/gridiron-lab/nfl-data/internal/dataset"
	"github.com/gridiron-lab/nfl-data/internal/stats"
)

// Lookup failures. Handlers map these to 404.
var (
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrTeamNotFound    = errors.New("team not found")
)

// InvalidYearError reports a year outside a dataset's range.
type InvalidYearError struct {
	DatasetID string
	Year      int
	MinYear   int
}

func (e *InvalidYearError) Error() string {
	return fmt.Sprintf("year %d is before the first %s season (%d)", e.Year, e.DatasetID, e.MinYear)
}

// Options configures a Service.
type Options struct {
	CurrentSeason int
	DefaultYears  []int
	RawCacheSize  int
	SeasonSize    int
	LoadTimeout   time.Duration // Bound on one shared upstream load
}

// Season is one enriched season plus everything derived from it.
type Season struct {
	Year       int
	Players    []stats.EnrichedPlayer
	Teams      []stats.TeamMeta
	TeamIndex  map[string]stats.TeamMeta
	Aggregates []stats.AggregatedTeam
}

// Service is safe for concurrent use.
type Service struct {
	source  dataset.Source
	opts    Options
	raw     *lru.Cache[string, *dataset.Table]
	seasons *lru.Cache[int, *Season]
	group   singleflight.Group
	logger  *slog.Logger

	// gen counts invalidations; mu orders them against cache inserts.
	mu  sync.Mutex
	gen atomic.Uint64
}

// New creates a Service reading from source.
func New(source dataset.Source, opts Options, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.RawCacheSize <= 0 {
		opts.RawCacheSize = 32
	}
	if opts.SeasonSize <= 0 {
		opts.SeasonSize = 16
	}
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = 2 * time.Minute
	}
	if opts.CurrentSeason == 0 {
		opts.CurrentSeason = 2024
	}
	if len(opts.DefaultYears) == 0 {
		opts.DefaultYears = []int{opts.CurrentSeason - 1, opts.CurrentSeason}
	}

	raw, err := lru.New[string, *dataset.Table](opts.RawCacheSize)
	if err != nil {
		return nil, fmt.Errorf("raw cache: %w", err)
	}
	seasons, err := lru.New[int, *Season](opts.SeasonSize)
	if err != nil {
		return nil, fmt.Errorf("season cache: %w", err)
	}
	return &Service{
		source:  source,
		opts:    opts,
		raw:     raw,
		seasons: seasons,
		logger:  logger,
	}, nil
}

// CurrentSeason is the year used when a request names none.
func (s *Service) CurrentSeason() int { return s.opts.CurrentSeason }

// DefaultYears is the year list used by the explorer when none is given.
func (s *Service) DefaultYears() []int { return slices.Clone(s.opts.DefaultYears) }

func (s *Service) year(y int) int {
	if y <= 0 {
		return s.opts.CurrentSeason
	}
	return y
}

func rawKey(datasetID string, years []int) string {
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = strconv.Itoa(y)
	}
	return datasetID + ":" + strings.Join(parts, ",")
}

// load runs fn once per key across concurrent callers. The shared load is
// detached from any single caller's cancellation and bounded by
// LoadTimeout; each caller still returns as soon as its own ctx is done.
func (s *Service) load(ctx context.Context, key string, fn func(ctx context.Context) (any, error)) (any, error) {
	ch := s.group.DoChan(key, func() (any, error) {
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.LoadTimeout)
		defer cancel()
		return fn(lctx)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// table returns the raw table for datasetID, loading it at most once per key
// while cached.
func (s *Service) table(ctx context.Context, datasetID string, years []int) (*dataset.Table, error) {
	key := rawKey(datasetID, years)
	if tbl, ok := s.raw.Get(key); ok {
		return tbl, nil
	}
	v, err := s.load(ctx, "raw:"+key, func(ctx context.Context) (any, error) {
		if tbl, ok := s.raw.Get(key); ok {
			return tbl, nil
		}
		gen := s.gen.Load()
		tbl, err := s.source.Fetch(ctx, datasetID, years)
		if err != nil {
			return nil, err
		}
		s.addIfCurrent(gen, func() { s.raw.Add(key, tbl) })
		s.logger.Debug("Dataset loaded", "dataset", datasetID, "years", years, "rows", len(tbl.Rows))
		return tbl, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", datasetID, err)
	}
	return v.(*dataset.Table), nil
}

// Season returns the enriched season for year, building it on first use.
func (s *Service) Season(ctx context.Context, year int) (*Season, error) {
	year = s.year(year)
	if info, ok := dataset.Lookup(dataset.Seasonal); ok && info.MinYear != nil && year < *info.MinYear {
		return nil, &InvalidYearError{DatasetID: dataset.Seasonal, Year: year, MinYear: *info.MinYear}
	}
	if season, ok := s.seasons.Get(year); ok {
		return season, nil
	}
	v, err := s.load(ctx, seasonKey(year), func(ctx context.Context) (any, error) {
		if season, ok := s.seasons.Get(year); ok {
			return season, nil
		}
		gen := s.gen.Load()
		season, err := s.buildSeason(ctx, year)
		if err != nil {
			return nil, err
		}
		s.addIfCurrent(gen, func() { s.seasons.Add(year, season) })
		return season, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Season), nil
}

func seasonKey(year int) string { return "season:" + strconv.Itoa(year) }

// addIfCurrent runs add unless an invalidation happened since gen was read.
// A load that started before a refresh must not put its rows back.
func (s *Service) addIfCurrent(gen uint64, add func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen.Load() != gen {
		return
	}
	add()
}

func (s *Service) buildSeason(ctx context.Context, year int) (*Season, error) {
	var seasonal, rosters, teams *dataset.Table
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		seasonal, err = s.table(gctx, dataset.Seasonal, []int{year})
		return err
	})
	g.Go(func() (err error) {
		rosters, err = s.table(gctx, dataset.Rosters, []int{year})
		return err
	})
	g.Go(func() (err error) {
		teams, err = s.table(gctx, dataset.Teams, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	teamList := stats.TeamList(teams)
	teamIndex := stats.TeamIndex(teamList)
	players := stats.Enrich(stats.SeasonRecords(seasonal), stats.RosterIndex(rosters), teamIndex)
	season := &Season{
		Year:       year,
		Players:    players,
		Teams:      teamList,
		TeamIndex:  teamIndex,
		Aggregates: stats.AggregateTeams(players, teamIndex),
	}
	s.logger.Info("Season enriched", "year", year, "players", len(players), "teams", len(season.Aggregates))
	return season, nil
}

// Invalidate drops everything cached for year. Team descriptions are not
// year-scoped and are dropped too.
func (s *Service) Invalidate(year int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen.Add(1)
	s.group.Forget(seasonKey(year))
	s.group.Forget("raw:" + rawKey(dataset.Seasonal, []int{year}))
	s.group.Forget("raw:" + rawKey(dataset.Rosters, []int{year}))
	s.group.Forget("raw:" + rawKey(dataset.Teams, nil))

	s.seasons.Remove(year)
	for _, key := range s.raw.Keys() {
		if strings.HasPrefix(key, dataset.Teams+":") || containsYear(key, year) {
			s.raw.Remove(key)
		}
	}
	s.logger.Info("Season cache invalidated", "year", year)
}

func containsYear(key string, year int) bool {
	_, list, ok := strings.Cut(key, ":")
	if !ok {
		return false
	}
	return slices.Contains(strings.Split(list, ","), strconv.Itoa(year))
}

// ClearCache drops every cached table and season.
func (s *Service) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen.Add(1)
	s.raw.Purge()
	s.seasons.Purge()
	s.logger.Info("Data cache cleared")
}

// CacheStats reports how many entries each memo holds.
func (s *Service) CacheStats() map[string]int {
	return map[string]int{
		"raw_tables": s.raw.Len(),
		"seasons":    s.seasons.Len(),
	}
}
