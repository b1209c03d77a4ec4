package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATA_SOURCE", "")
	t.Setenv("API_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("DEFAULT_YEARS", "")
	t.Setenv("NFLVERSE_SEASON_TYPE", "")
	t.Setenv("NFLVERSE_TEAMS_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceNflverse, cfg.DataSource)
	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, []int{2023, 2024}, cfg.DefaultYears)
	assert.Equal(t, "REG", cfg.SeasonType)
	assert.Equal(t, 60*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, DefaultTeamsURL, cfg.TeamsURL)
	assert.False(t, cfg.IsProduction())
}

func TestLoadPicksPostgresWhenDatabaseURLSet(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/nfl")
	t.Setenv("DATA_SOURCE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, SourcePostgres, cfg.DataSource)
}

func TestLoadRejectsPostgresWithoutURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATA_SOURCE", "postgres")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsUnknownSource(t *testing.T) {
	t.Setenv("DATA_SOURCE", "sqlite")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadParsesLists(t *testing.T) {
	t.Setenv("DATA_SOURCE", "nflverse")
	t.Setenv("DEFAULT_YEARS", "2021, 2022")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("API_PORT", "")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []int{2021, 2022}, cfg.DefaultYears)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.Equal(t, 9090, cfg.APIPort)
}

func TestLoadRejectsBadYears(t *testing.T) {
	t.Setenv("DATA_SOURCE", "nflverse")
	t.Setenv("DEFAULT_YEARS", "2021,last")

	_, err := Load()
	require.Error(t, err)
}
