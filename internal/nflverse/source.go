package nflverse

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gridiron-lab/nfl-data/internal/dataset"
)

// SourceConfig holds the release asset locations. Year-aware URLs contain a
// "{season}" placeholder.
type SourceConfig struct {
	SeasonalURL  string
	RostersURL   string
	TeamsURL     string
	SeasonType   string // REG, POST or ALL
	DefaultYears []int
}

// Observer receives the outcome of every asset fetch.
type Observer interface {
	ObserveFetch(datasetID string, d time.Duration, err error)
}

// Source serves raw tables straight from nflverse. It implements
// dataset.Source.
type Source struct {
	client   *Client
	cfg      SourceConfig
	observer Observer
	logger   *slog.Logger
}

// NewSource creates a Source. observer may be nil.
func NewSource(client *Client, cfg SourceConfig, observer Observer, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	if len(cfg.DefaultYears) == 0 {
		cfg.DefaultYears = []int{2023, 2024}
	}
	return &Source{client: client, cfg: cfg, observer: observer, logger: logger}
}

// Fetch downloads datasetID for years and concatenates the seasons in
// ascending year order.
func (s *Source) Fetch(ctx context.Context, datasetID string, years []int) (*dataset.Table, error) {
	info, ok := dataset.Lookup(datasetID)
	if !ok {
		return nil, &dataset.UnknownDatasetError{ID: datasetID}
	}

	if !info.SupportsYears {
		return s.fetchOne(ctx, datasetID, s.cfg.TeamsURL)
	}

	if len(years) == 0 {
		years = s.cfg.DefaultYears
	}
	years = slices.Clone(years)
	slices.Sort(years)
	years = slices.Compact(years)

	tmpl := s.cfg.SeasonalURL
	if datasetID == dataset.Rosters {
		tmpl = s.cfg.RostersURL
	}

	tables := make([]*dataset.Table, len(years))
	g, gctx := errgroup.WithContext(ctx)
	for i, y := range years {
		g.Go(func() error {
			tbl, err := s.fetchOne(gctx, datasetID, seasonURL(tmpl, y))
			if err != nil {
				return err
			}
			tables[i] = tbl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &dataset.Table{}
	for _, tbl := range tables {
		merged.Append(tbl)
	}

	if datasetID == dataset.Seasonal {
		merged = s.filterSeasonType(merged)
	}
	return merged, nil
}

func (s *Source) fetchOne(ctx context.Context, datasetID, url string) (*dataset.Table, error) {
	start := time.Now()
	tbl, err := s.client.getCSV(ctx, datasetID, url)
	if s.observer != nil {
		s.observer.ObserveFetch(datasetID, time.Since(start), err)
	}
	return tbl, err
}

// filterSeasonType keeps rows of the configured season type when the asset
// carries a season_type column.
func (s *Source) filterSeasonType(tbl *dataset.Table) *dataset.Table {
	want := strings.ToUpper(s.cfg.SeasonType)
	if want == "" || want == "ALL" {
		return tbl
	}
	if _, ok := tbl.Column("season_type"); !ok {
		return tbl
	}
	return tbl.Filter(func(r dataset.Row) bool {
		v, _ := r["season_type"].(string)
		return strings.EqualFold(v, want)
	})
}

func seasonURL(tmpl string, season int) string {
	return strings.ReplaceAll(tmpl, "{season}", strconv.Itoa(season))
}
