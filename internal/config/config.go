// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Data sources
// --------------------------------------------------------------------------

const (
	// SourceNflverse reads raw datasets straight from the nflverse releases.
	SourceNflverse = "nflverse"
	// SourcePostgres reads raw datasets previously seeded by cmd/ingest.
	SourcePostgres = "postgres"
)

// --------------------------------------------------------------------------
// Table names, matching internal/db/schema.sql
// --------------------------------------------------------------------------

const (
	DatasetRowsTable    = "dataset_rows"
	DatasetColumnsTable = "dataset_columns"

	// RefreshChannel is the LISTEN/NOTIFY channel raised after a seed.
	RefreshChannel = "nfl_data_refreshed"
)

// Default nflverse release locations. "{season}" is replaced with the year.
const (
	DefaultSeasonalURL = "https://github.com/nflverse/nflverse-data/releases/download/player_stats/player_stats_season_{season}.csv"
	DefaultRostersURL  = "https://github.com/nflverse/nflverse-data/releases/download/rosters/roster_{season}.csv"
	DefaultTeamsURL    = "https://github.com/nflverse/nflfastR-data/raw/master/teams_colors_logos.csv"
)

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Data
	DataSource    string
	CurrentSeason int
	DefaultYears  []int

	// Upstream nflverse
	SeasonalURL       string
	RostersURL        string
	TeamsURL          string
	RequestsPerMinute int
	SeasonType        string
	UpstreamTimeout   time.Duration
	EnrichedCacheSize int
	RawCacheSize      int

	// Cache
	CacheEnabled bool
	RedisURL     string

	// Scheduled cache refresh (cron spec, empty disables)
	RefreshSchedule string

	// Metrics
	MetricsEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", "")

	defaultSource := SourceNflverse
	if dbURL != "" {
		defaultSource = SourcePostgres
	}
	source := strings.ToLower(envOr("DATA_SOURCE", defaultSource))
	switch source {
	case SourceNflverse:
	case SourcePostgres:
		if dbURL == "" {
			return nil, fmt.Errorf("DATABASE_URL must be set when DATA_SOURCE=%s", SourcePostgres)
		}
	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q (want %s or %s)", source, SourceNflverse, SourcePostgres)
	}

	defaultYears, err := envInts("DEFAULT_YEARS", []int{2023, 2024})
	if err != nil {
		return nil, err
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		DataSource:    source,
		CurrentSeason: envInt("CURRENT_SEASON", 2024),
		DefaultYears:  defaultYears,

		SeasonalURL:       envOr("NFLVERSE_SEASONAL_URL", DefaultSeasonalURL),
		RostersURL:        envOr("NFLVERSE_ROSTERS_URL", DefaultRostersURL),
		TeamsURL:          envOr("NFLVERSE_TEAMS_URL", DefaultTeamsURL),
		RequestsPerMinute: envInt("NFLVERSE_REQUESTS_PER_MINUTE", 120),
		SeasonType:        strings.ToUpper(envOr("NFLVERSE_SEASON_TYPE", "REG")),
		UpstreamTimeout:   time.Duration(envInt("NFLVERSE_TIMEOUT_SECONDS", 60)) * time.Second,
		EnrichedCacheSize: envInt("ENRICHED_CACHE_SIZE", 16),
		RawCacheSize:      envInt("RAW_CACHE_SIZE", 32),

		CacheEnabled: envBool("CACHE_ENABLED", true),
		RedisURL:     envOr("REDIS_URL", ""),

		RefreshSchedule: envOr("REFRESH_SCHEDULE", ""),

		MetricsEnabled: envBool("METRICS_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

func envInts(key string, fallback []int) ([]int, error) {
	list := envList(key, nil)
	if list == nil {
		return fallback, nil
	}
	out := make([]int, 0, len(list))
	for _, s := range list {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", key, s)
		}
		out = append(out, n)
	}
	return out, nil
}
