// Package db provides a pgxpool-based connection pool with prepared statement
// registration, schema bootstrap and health checking.
package db

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gridiron-lab/nfl-data/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Tables must exist before statements referencing them can be prepared.
	if err := migrate(ctx, poolCfg.ConnConfig); err != nil {
		return nil, err
	}

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// migrate applies the embedded schema over a dedicated connection.
func migrate(ctx context.Context, connCfg *pgx.ConnConfig) error {
	conn, err := pgx.ConnectConfig(ctx, connCfg)
	if err != nil {
		return fmt.Errorf("connect for migration: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// Statement names registered on every connection.
const (
	StmtHealthCheck    = "health_check"
	StmtDatasetColumns = "dataset_columns"
	StmtDatasetRows    = "dataset_rows"
	StmtDatasetSeasons = "dataset_seasons"
	StmtDeleteColumns  = "delete_dataset_columns"
	StmtDeleteRows     = "delete_dataset_rows"
	StmtInsertColumn   = "insert_dataset_column"
	StmtNotify         = "notify_refresh"
	StmtRecordSeedRun  = "record_seed_run"
)

// registerPreparedStatements registers all statements the API and ingestion
// layers use.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		StmtHealthCheck: "SELECT 1",

		// API: raw dataset reads
		StmtDatasetColumns: "SELECT season, name, type, dtype FROM " + config.DatasetColumnsTable +
			" WHERE dataset_id = $1 AND season = ANY($2) ORDER BY season, position",
		StmtDatasetRows: "SELECT season, data FROM " + config.DatasetRowsTable +
			" WHERE dataset_id = $1 AND season = ANY($2) ORDER BY season, row_num",
		StmtDatasetSeasons: "SELECT DISTINCT season FROM " + config.DatasetColumnsTable +
			" WHERE dataset_id = $1 ORDER BY season",

		// Ingestion: replace a (dataset, season) pair
		StmtDeleteColumns: "DELETE FROM " + config.DatasetColumnsTable + " WHERE dataset_id = $1 AND season = $2",
		StmtDeleteRows:    "DELETE FROM " + config.DatasetRowsTable + " WHERE dataset_id = $1 AND season = $2",
		StmtInsertColumn: "INSERT INTO " + config.DatasetColumnsTable +
			" (dataset_id, season, position, name, type, dtype) VALUES ($1, $2, $3, $4, $5, $6)",

		// Ingestion: bookkeeping and change notification
		StmtNotify: "SELECT pg_notify($1, $2)",
		StmtRecordSeedRun: "INSERT INTO seed_runs (id, started_at, finished_at, seasons, rows_written, errors)" +
			" VALUES ($1, $2, $3, $4, $5, $6)",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
