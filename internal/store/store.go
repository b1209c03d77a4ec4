// Package store keeps seeded nflverse tables in Postgres and serves them back
// as a dataset.Source.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gridiron-lab/nfl-data/internal/config"
	"github.com/gridiron-lab/nfl-data/internal/dataset"
	"github.com/gridiron-lab/nfl-data/internal/db"
)

// TeamsSeason is the season key under which year-less datasets are stored.
const TeamsSeason = 0

// Store reads and writes raw dataset tables.
type Store struct {
	pool         *db.Pool
	defaultYears []int
	logger       *slog.Logger
}

// New creates a Store. defaultYears is used when Fetch is called without
// years.
func New(pool *db.Pool, defaultYears []int, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, defaultYears: defaultYears, logger: logger}
}

// Ping verifies the database with the prepared health statement.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.HealthCheck(ctx)
}

func (s *Store) seasonsFor(info dataset.Info, years []int) []int {
	if !info.SupportsYears {
		return []int{TeamsSeason}
	}
	if len(years) == 0 {
		years = s.defaultYears
	}
	years = slices.Clone(years)
	slices.Sort(years)
	return slices.Compact(years)
}

// Fetch implements dataset.Source. Every requested season must have been
// seeded.
func (s *Store) Fetch(ctx context.Context, datasetID string, years []int) (*dataset.Table, error) {
	info, ok := dataset.Lookup(datasetID)
	if !ok {
		return nil, &dataset.UnknownDatasetError{ID: datasetID}
	}
	seasons := s.seasonsFor(info, years)

	columns, err := s.columns(ctx, datasetID, seasons)
	if err != nil {
		return nil, err
	}
	for _, season := range seasons {
		if len(columns[season]) == 0 {
			return nil, fmt.Errorf("%w: %s season %d", dataset.ErrNoData, datasetID, season)
		}
	}

	rows, err := s.pool.Query(ctx, db.StmtDatasetRows, datasetID, seasons)
	if err != nil {
		return nil, fmt.Errorf("query %s rows: %w", datasetID, err)
	}
	defer rows.Close()

	tables := make(map[int]*dataset.Table, len(seasons))
	for _, season := range seasons {
		tables[season] = &dataset.Table{Columns: columns[season]}
	}
	for rows.Next() {
		var (
			season int
			raw    []byte
		)
		if err := rows.Scan(&season, &raw); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", datasetID, err)
		}
		tbl := tables[season]
		row, err := decodeRow(raw, tbl.Columns)
		if err != nil {
			return nil, fmt.Errorf("decode %s season %d row: %w", datasetID, season, err)
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s rows: %w", datasetID, err)
	}

	merged := &dataset.Table{}
	for _, season := range seasons {
		merged.Append(tables[season])
	}
	return merged, nil
}

func (s *Store) columns(ctx context.Context, datasetID string, seasons []int) (map[int][]dataset.Column, error) {
	rows, err := s.pool.Query(ctx, db.StmtDatasetColumns, datasetID, seasons)
	if err != nil {
		return nil, fmt.Errorf("query %s columns: %w", datasetID, err)
	}
	defer rows.Close()

	out := make(map[int][]dataset.Column)
	for rows.Next() {
		var (
			season int
			col    dataset.Column
		)
		if err := rows.Scan(&season, &col.Name, &col.Type, &col.DType); err != nil {
			return nil, fmt.Errorf("scan %s column: %w", datasetID, err)
		}
		out[season] = append(out[season], col)
	}
	return out, rows.Err()
}

// Seasons lists the seasons seeded for datasetID.
func (s *Store) Seasons(ctx context.Context, datasetID string) ([]int, error) {
	rows, err := s.pool.Query(ctx, db.StmtDatasetSeasons, datasetID)
	if err != nil {
		return nil, fmt.Errorf("query %s seasons: %w", datasetID, err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int])
}

// ReplaceDataset swaps the stored rows of (datasetID, season) for tbl in one
// transaction and returns the number of rows written.
func (s *Store) ReplaceDataset(ctx context.Context, datasetID string, season int, tbl *dataset.Table) (int64, error) {
	payload := make([][]any, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		raw, err := encodeRow(row)
		if err != nil {
			return 0, fmt.Errorf("encode %s row %d: %w", datasetID, i, err)
		}
		payload = append(payload, []any{datasetID, season, i, raw})
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, db.StmtDeleteRows, datasetID, season); err != nil {
		return 0, fmt.Errorf("delete %s rows: %w", datasetID, err)
	}
	if _, err := tx.Exec(ctx, db.StmtDeleteColumns, datasetID, season); err != nil {
		return 0, fmt.Errorf("delete %s columns: %w", datasetID, err)
	}

	batch := &pgx.Batch{}
	for i, col := range tbl.Columns {
		batch.Queue(db.StmtInsertColumn, datasetID, season, i, col.Name, col.Type, col.DType)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("insert %s columns: %w", datasetID, err)
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{config.DatasetRowsTable},
		[]string{"dataset_id", "season", "row_num", "data"},
		pgx.CopyFromRows(payload),
	)
	if err != nil {
		return 0, fmt.Errorf("copy %s rows: %w", datasetID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	s.logger.Info("Dataset stored", "dataset", datasetID, "season", season, "rows", n, "columns", len(tbl.Columns))
	return n, nil
}

// RefreshEvent is the payload sent on config.RefreshChannel after a seed.
type RefreshEvent struct {
	RunID    string   `json:"run_id"`
	Datasets []string `json:"datasets"`
	Seasons  []int    `json:"seasons"`
}

// NotifyRefreshed tells listening API instances that stored data changed.
func (s *Store) NotifyRefreshed(ctx context.Context, ev RefreshEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode refresh event: %w", err)
	}
	if _, err := s.pool.Exec(ctx, db.StmtNotify, config.RefreshChannel, string(payload)); err != nil {
		return fmt.Errorf("notify %s: %w", config.RefreshChannel, err)
	}
	return nil
}

// SeedRun is the bookkeeping row of one ingest run.
type SeedRun struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	Seasons     []int
	RowsWritten int64
	Errors      []string
}

// RecordSeedRun stores the outcome of an ingest run.
func (s *Store) RecordSeedRun(ctx context.Context, run SeedRun) error {
	errs := run.Errors
	if errs == nil {
		errs = []string{}
	}
	_, err := s.pool.Exec(ctx, db.StmtRecordSeedRun,
		run.ID, run.StartedAt, run.FinishedAt, run.Seasons, run.RowsWritten, errs)
	if err != nil {
		return fmt.Errorf("record seed run: %w", err)
	}
	return nil
}

// encodeRow marshals a row for the JSONB column. Non-finite floats have no
// JSON form and are stored as null.
func encodeRow(row dataset.Row) (json.RawMessage, error) {
	clean := make(map[string]any, len(row))
	for k, v := range row {
		if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			v = nil
		}
		clean[k] = v
	}
	return json.Marshal(clean)
}

// decodeRow restores a stored row, converting numbers back to the Go type of
// their column.
func decodeRow(raw []byte, columns []dataset.Column) (dataset.Row, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		return nil, err
	}
	row := make(dataset.Row, len(columns))
	for _, col := range columns {
		row[col.Name] = col.Normalize(values[col.Name])
	}
	return row, nil
}
