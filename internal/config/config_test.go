package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "docs", cfg.DocsPath)
	assert.Equal(t, "./data/validation.db", cfg.DatabasePath)
	assert.Equal(t, 10.0, cfg.CostOfCapital)
	assert.Equal(t, 100, cfg.MaxScoreAgeDays)
	assert.Equal(t, "0 0 18 * * MON-FRI", cfg.ValidationSchedule)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.DevMode)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DOCS_PATH", "/srv/docs")
	t.Setenv("COST_OF_CAPITAL", "12.5")
	t.Setenv("MAX_SCORE_AGE_DAYS", "30")
	t.Setenv("PORT", "9090")
	t.Setenv("DEV_MODE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/docs", cfg.DocsPath)
	assert.Equal(t, 12.5, cfg.CostOfCapital)
	assert.Equal(t, 30, cfg.MaxScoreAgeDays)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.DevMode)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("COST_OF_CAPITAL", "lots")
	t.Setenv("PORT", "not-a-port")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10.0, cfg.CostOfCapital)
	assert.Equal(t, 8080, cfg.Port)
}

func TestValidate(t *testing.T) {
	cfg := &Config{DocsPath: "docs", DatabasePath: "db", CostOfCapital: 10}
	assert.NoError(t, cfg.Validate())

	cfg.CostOfCapital = -1
	assert.Error(t, cfg.Validate())

	cfg = &Config{DatabasePath: "db"}
	assert.Error(t, cfg.Validate())
}
