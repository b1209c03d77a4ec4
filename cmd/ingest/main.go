// Command ingest is the NFL data ingestion CLI.
//
// Usage:
//
//	nfl-ingest seed --season 2023 --season 2024 --workers 4
//	nfl-ingest datasets
//	nfl-ingest export --season 2024 --out players_2024.parquet
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gridiron-lab/nfl-data/internal/config"
	"github.com/gridiron-lab/nfl-data/internal/dataset"
	"github.com/gridiron-lab/nfl-data/internal/db"
	"github.com/gridiron-lab/nfl-data/internal/nflverse"
	"github.com/gridiron-lab/nfl-data/internal/seed"
	"github.com/gridiron-lab/nfl-data/internal/service"
	"github.com/gridiron-lab/nfl-data/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "nfl-ingest",
		Short: "NFL data ingestion CLI",
	}

	root.AddCommand(seedCmd())
	root.AddCommand(datasetsCmd())
	root.AddCommand(exportCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	var (
		seasons []int
		workers int
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Copy nflverse seasons into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				if cfg.DatabaseURL == "" {
					return fmt.Errorf("DATABASE_URL is required")
				}
				pool, err := db.New(ctx, cfg)
				if err != nil {
					return fmt.Errorf("connect to database: %w", err)
				}
				defer pool.Close()

				if len(seasons) == 0 {
					seasons = cfg.DefaultYears
				}
				st := store.New(pool, cfg.DefaultYears, logger)
				result := seed.Seasons(ctx, upstream(cfg), st, seasons, workers, logger)
				logger.Info("Seed finished",
					"duration", result.Duration.Round(time.Second),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("seed error", "error", e)
				}
				if !result.OK() {
					return fmt.Errorf("seed run %s finished with %d errors", result.RunID, len(result.Errors))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntSliceVar(&seasons, "season", nil, "Season year (repeatable; defaults to DEFAULT_YEARS)")
	cmd.Flags().IntVar(&workers, "workers", 2, "Concurrent worker count")
	return cmd
}

// --------------------------------------------------------------------------
// datasets command
// --------------------------------------------------------------------------

func datasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List the known datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tYEARS\tMIN YEAR")
			for _, info := range dataset.All() {
				minYear := "-"
				if info.MinYear != nil {
					minYear = strconv.Itoa(*info.MinYear)
				}
				fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", info.ID, info.Name, info.SupportsYears, minYear)
			}
			return tw.Flush()
		},
	}
}

// --------------------------------------------------------------------------
// export command
// --------------------------------------------------------------------------

func exportCmd() *cobra.Command {
	var (
		season int
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a season of enriched players to a Parquet file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config) error {
				var source dataset.Source = upstream(cfg)
				if cfg.DataSource == config.SourcePostgres {
					pool, err := db.New(ctx, cfg)
					if err != nil {
						return fmt.Errorf("connect to database: %w", err)
					}
					defer pool.Close()
					source = store.New(pool, cfg.DefaultYears, logger)
				}

				svc, err := service.New(source, service.Options{
					CurrentSeason: cfg.CurrentSeason,
					DefaultYears:  cfg.DefaultYears,
				}, logger)
				if err != nil {
					return err
				}

				if out == "" {
					out = fmt.Sprintf("players_%d.parquet", svc.CurrentSeason())
					if season != 0 {
						out = fmt.Sprintf("players_%d.parquet", season)
					}
				}
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}

				n, err := svc.ExportPlayers(ctx, season, f)
				if cerr := f.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					_ = os.Remove(out)
					return fmt.Errorf("export: %w", err)
				}
				logger.Info("Export written", "file", out, "rows", n)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", 0, "Season year (defaults to CURRENT_SEASON)")
	cmd.Flags().StringVar(&out, "out", "", "Output path (defaults to players_<season>.parquet)")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

func upstream(cfg *config.Config) *nflverse.Source {
	client := nflverse.NewClient(cfg.UpstreamTimeout, cfg.RequestsPerMinute, logger)
	return nflverse.NewSource(client, nflverse.SourceConfig{
		SeasonalURL:  cfg.SeasonalURL,
		RostersURL:   cfg.RostersURL,
		TeamsURL:     cfg.TeamsURL,
		SeasonType:   cfg.SeasonType,
		DefaultYears: cfg.DefaultYears,
	}, nil, logger)
}

// run handles config loading and context cancellation.
func run(fn func(ctx context.Context, cfg *config.Config) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return fn(ctx, cfg)
}
