package validation

import (
	"math"

	"github.com/aristath/grq-validation/pkg/formulas"
)

// Projector forecasts the 90-day outcome of a position before the window
// closes, choosing a strategy per elapsed-time tier:
//
//   - early (<30d) and middle (30-60d): dampened trend extrapolation when
//     the fit is good enough, otherwise target-anchored blending
//   - late (>=60d): realistic trajectory reconciled against the target,
//     or mean reversion toward zero when no target exists
//
// Days elapsed are always measured from the score date to the latest
// available market-data date, never to the wall clock.
type Projector struct {
	cfg ProjectorConfig
}

// NewProjector creates a projector with the given tier table.
func NewProjector(cfg ProjectorConfig) Projector {
	return Projector{cfg: cfg}
}

// Project produces a 90-day projection using the per-tier trend trust
// thresholds.
func (p Projector) Project(trend *TrendLine, current float64, targetPct *float64, daysElapsed int) Projection {
	minRSquared := math.Inf(1)
	if tier := p.cfg.tierFor(daysElapsed); tier != nil {
		minRSquared = tier.MinRSquared
	}
	return p.project(trend, current, targetPct, daysElapsed, minRSquared)
}

// ProjectWithThreshold overrides the tier's trend trust threshold. The
// portfolio aggregator uses this with its own, more lenient table.
func (p Projector) ProjectWithThreshold(trend *TrendLine, current float64, targetPct *float64, daysElapsed int, minRSquared float64) Projection {
	return p.project(trend, current, targetPct, daysElapsed, minRSquared)
}

func (p Projector) project(trend *TrendLine, current float64, targetPct *float64, daysElapsed int, minRSquared float64) Projection {
	proj := Projection{
		DaysElapsed:        daysElapsed,
		CurrentPerformance: current,
		TargetPercentage:   targetPct,
	}

	tier := p.cfg.tierFor(daysElapsed)
	if daysElapsed >= p.cfg.LateTierMinDays || tier == nil {
		p.projectLate(&proj)
	} else {
		if trend != nil && trend.RSquared >= minRSquared {
			proj.Projected90Day = trend.Predicted90Day() * tier.Dampening
			proj.Method = MethodDampenedTrend
			proj.Confidence = math.Min(trend.RSquared*tier.ConfidenceMul, tier.ConfidenceCap)
		} else {
			p.anchorToTarget(&proj, tier)
		}
	}

	proj.Projected90Day = formulas.Clamp(proj.Projected90Day, p.cfg.FloorPct, p.cfg.CeilingPct)
	return proj
}

// anchorToTarget blends the current performance toward the target: a gain
// is assumed to close a fraction of the remaining gap, a loss to recover a
// fraction of the way back to zero.
func (p Projector) anchorToTarget(proj *Projection, tier *TierConfig) {
	current := proj.CurrentPerformance
	switch {
	case current < 0:
		proj.Projected90Day = current * (1 - tier.LossRecovery)
	case proj.TargetPercentage != nil:
		proj.Projected90Day = current + (*proj.TargetPercentage-current)*tier.GapBlend
	default:
		proj.Projected90Day = current
	}
	proj.Method = MethodTargetAnchored
	proj.Confidence = tier.FallbackConfidence
}

// projectLate extrapolates the realized daily rate over the full window,
// then reconciles against the target: when closing the remaining gap
// would need an unrealistic daily rate, the projection is capped. With no
// target, performance is assumed to revert partway toward zero.
func (p Projector) projectLate(proj *Projection) {
	current := proj.CurrentPerformance
	days := proj.DaysElapsed

	if proj.TargetPercentage == nil {
		proj.Projected90Day = current * (1 - p.cfg.MeanReversionRate)
		proj.Method = MethodMeanReversion
		proj.Confidence = p.cfg.MeanReversionConfidence
		return
	}

	trajectory := current / float64(days) * WindowDays
	target := *proj.TargetPercentage

	requiredDaily := 0.0
	if remaining := WindowDays - days; remaining > 0 {
		requiredDaily = (target - current) / float64(remaining)
	}

	proj.Method = MethodTrajectory
	if requiredDaily > p.cfg.MaxDailyRate {
		proj.Projected90Day = math.Min(trajectory, target*p.cfg.TargetCapFactor)
		proj.Confidence = p.cfg.CappedConfidence
	} else {
		proj.Projected90Day = trajectory
		proj.Confidence = p.cfg.TrajectoryConfidence
	}
}
