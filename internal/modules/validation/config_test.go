package validation

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor(t *testing.T) {
	cfg := DefaultProjectorConfig()

	tests := []struct {
		days        int
		wantMaxDays int // 0 means the late tier (nil)
	}{
		{days: 0, wantMaxDays: 30},
		{days: 29, wantMaxDays: 30},
		{days: 30, wantMaxDays: 60},
		{days: 59, wantMaxDays: 60},
		{days: 60, wantMaxDays: 0},
		{days: 90, wantMaxDays: 0},
	}

	for _, tt := range tests {
		tier := cfg.tierFor(tt.days)
		if tt.wantMaxDays == 0 {
			assert.Nil(t, tier, "days=%d", tt.days)
			continue
		}
		require.NotNil(t, tier, "days=%d", tt.days)
		assert.Equal(t, tt.wantMaxDays, tier.MaxDays, "days=%d", tt.days)
	}
}

func TestPortfolioTrendThreshold(t *testing.T) {
	cfg := DefaultProjectorConfig()

	assert.Equal(t, 0.05, cfg.PortfolioTrendThreshold(0))
	assert.Equal(t, 0.05, cfg.PortfolioTrendThreshold(29))
	assert.Equal(t, 0.03, cfg.PortfolioTrendThreshold(30))
	assert.Equal(t, 0.01, cfg.PortfolioTrendThreshold(60))
	assert.Equal(t, 0.001, cfg.PortfolioTrendThreshold(80))
	assert.Equal(t, 0.001, cfg.PortfolioTrendThreshold(89))
}

func TestLoadProjectorConfig(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := LoadProjectorConfig("")
		require.NoError(t, err)
		assert.Equal(t, DefaultProjectorConfig(), cfg)
	})

	t.Run("yaml overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "projection.yaml")
		content := "max_daily_rate: 3.0\nceiling_pct: 150\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := LoadProjectorConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 3.0, cfg.MaxDailyRate)
		assert.Equal(t, 150.0, cfg.CeilingPct)
		// Untouched fields keep their defaults.
		assert.Equal(t, 0.6, cfg.TargetCapFactor)
		assert.Len(t, cfg.Tiers, 2)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := LoadProjectorConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestProjectEmptyTierTableFallsBackToLate(t *testing.T) {
	// A config with no early tiers must not panic; everything routes to
	// the late-tier strategies.
	cfg := DefaultProjectorConfig()
	cfg.Tiers = nil
	p := NewProjector(cfg)

	proj := p.Project(&TrendLine{Slope: 1, RSquared: 1}, 5, floatPtr(20), 10)
	assert.Equal(t, MethodTrajectory, proj.Method)
	assert.False(t, math.IsNaN(proj.Projected90Day))
}
