package validation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TierConfig parameterizes projection for one elapsed-time tier. The tier
// thresholds and dampening factors are kept as data rather than nested
// conditionals so they stay auditable and independently testable.
type TierConfig struct {
	MaxDays            int     `yaml:"max_days"`            // exclusive upper bound on days elapsed
	Dampening          float64 `yaml:"dampening"`           // multiplier on the trend's 90-day extrapolation
	ConfidenceMul      float64 `yaml:"confidence_mul"`      // confidence = min(R² × mul, cap)
	ConfidenceCap      float64 `yaml:"confidence_cap"`      //
	MinRSquared        float64 `yaml:"min_r_squared"`       // below this the trend is not trusted
	GapBlend           float64 `yaml:"gap_blend"`           // target-anchored: share of the gap to target
	LossRecovery       float64 `yaml:"loss_recovery"`       // target-anchored: share of a loss recovered toward zero
	FallbackConfidence float64 `yaml:"fallback_confidence"` // confidence of the target-anchored fallback
}

// TrendThresholdTier maps a minimum elapsed-day count to the R² required
// to trust the portfolio trend line. Late-period fits are inherently more
// informative, so thresholds get far more lenient near term completion.
type TrendThresholdTier struct {
	MinDays     int     `yaml:"min_days"`
	MinRSquared float64 `yaml:"min_r_squared"`
}

// ProjectorConfig holds every tunable of the hybrid projection algorithm.
type ProjectorConfig struct {
	Tiers []TierConfig `yaml:"tiers"` // early tiers, ascending MaxDays

	// Late tier (trajectory / mean reversion), active from LateTierMinDays.
	LateTierMinDays         int     `yaml:"late_tier_min_days"`
	MaxDailyRate            float64 `yaml:"max_daily_rate"`    // %/day required to close the gap before capping
	TargetCapFactor         float64 `yaml:"target_cap_factor"` // cap = target × factor when the gap is unrealistic
	TrajectoryConfidence    float64 `yaml:"trajectory_confidence"`
	CappedConfidence        float64 `yaml:"capped_confidence"`
	MeanReversionRate       float64 `yaml:"mean_reversion_rate"` // share of current performance reverted toward 0
	MeanReversionConfidence float64 `yaml:"mean_reversion_confidence"`

	// Hard bounds on any projected value, in percent.
	FloorPct   float64 `yaml:"floor_pct"`
	CeilingPct float64 `yaml:"ceiling_pct"`

	// Portfolio-level trend trust thresholds, descending MinDays.
	PortfolioTrendTiers []TrendThresholdTier `yaml:"portfolio_trend_tiers"`
}

// DefaultProjectorConfig returns the built-in tier table.
func DefaultProjectorConfig() ProjectorConfig {
	return ProjectorConfig{
		Tiers: []TierConfig{
			{MaxDays: 30, Dampening: 0.3, ConfidenceMul: 0.7, ConfidenceCap: 0.8, MinRSquared: 0.1, GapBlend: 0.10, LossRecovery: 0.50, FallbackConfidence: 0.3},
			{MaxDays: 60, Dampening: 0.5, ConfidenceMul: 0.8, ConfidenceCap: 0.9, MinRSquared: 0.05, GapBlend: 0.15, LossRecovery: 0.60, FallbackConfidence: 0.5},
		},
		LateTierMinDays:         60,
		MaxDailyRate:            2.0,
		TargetCapFactor:         0.6,
		TrajectoryConfidence:    0.7,
		CappedConfidence:        0.6,
		MeanReversionRate:       0.4,
		MeanReversionConfidence: 0.3,
		FloorPct:                -100,
		CeilingPct:              200,
		PortfolioTrendTiers: []TrendThresholdTier{
			{MinDays: 80, MinRSquared: 0.001},
			{MinDays: 60, MinRSquared: 0.01},
			{MinDays: 30, MinRSquared: 0.03},
			{MinDays: 0, MinRSquared: 0.05},
		},
	}
}

// LoadProjectorConfig reads a YAML tier table over the defaults. An empty
// path returns the defaults unchanged.
func LoadProjectorConfig(path string) (ProjectorConfig, error) {
	cfg := DefaultProjectorConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read projection config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse projection config: %w", err)
	}
	return cfg, nil
}

// PortfolioTrendThreshold returns the R² needed to trust the portfolio
// trend line after the given number of elapsed days.
func (c ProjectorConfig) PortfolioTrendThreshold(daysElapsed int) float64 {
	for _, tier := range c.PortfolioTrendTiers {
		if daysElapsed >= tier.MinDays {
			return tier.MinRSquared
		}
	}
	return 0.05
}

// tierFor selects the early-tier parameters for an elapsed-day count.
// Returns nil when the late tier applies.
func (c ProjectorConfig) tierFor(daysElapsed int) *TierConfig {
	if daysElapsed >= c.LateTierMinDays {
		return nil
	}
	for i := range c.Tiers {
		if daysElapsed < c.Tiers[i].MaxDays {
			return &c.Tiers[i]
		}
	}
	return nil
}
