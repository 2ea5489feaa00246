package validation

const (
	// DefaultTargetPercent is assumed when a stock has no resolvable
	// target percentage.
	DefaultTargetPercent = 20.0

	// targetThresholdFactor scales the target into the pass threshold.
	targetThresholdFactor = 0.8

	// earlyDaysCutoff bounds the tier where raw performance is too young
	// to call anything more than a direction.
	earlyDaysCutoff = 30
)

// Classify maps a position's realized performance, projection and target
// onto a judgement label. Pure function over a closed label set; labels
// are recomputed from scratch on every evaluation, never transitioned.
//
// After the 90-day window the labels are terminal (hit/partial/missed,
// with the threshold boundary counting as a hit). Before that, a trusted
// projection drives the label; without one, raw performance is compared
// against the threshold per elapsed-time tier.
func Classify(performance *float64, proj *Projection, targetPct *float64, daysElapsed int) Judgement {
	if performance == nil {
		return Judgement{Status: StatusPending}
	}
	perf := *performance

	target := DefaultTargetPercent
	if targetPct != nil {
		target = *targetPct
	}
	threshold := target * targetThresholdFactor

	if daysElapsed >= WindowDays {
		switch {
		case perf >= threshold:
			return Judgement{Status: StatusHitTarget, Value: perf}
		case perf <= 0:
			return Judgement{Status: StatusMissedTarget, Value: perf}
		default:
			return Judgement{Status: StatusPartialSuccess, Value: perf}
		}
	}

	if proj != nil && proj.Trusted() {
		projected := proj.Projected90Day
		pctOfTarget := projected / target
		switch {
		case projected < 0 || pctOfTarget < 0.2:
			return Judgement{Status: StatusDeclining, Value: projected}
		case pctOfTarget >= 0.95:
			return Judgement{Status: StatusOnTrack, Value: projected}
		default: // 0.2 <= pctOfTarget < 0.95
			return Judgement{Status: StatusBelowTarget, Value: projected}
		}
	}

	if daysElapsed < earlyDaysCutoff {
		if perf >= 0 {
			return Judgement{Status: StatusEarlyDaysPositive, Value: perf}
		}
		return Judgement{Status: StatusEarlyDaysNegative, Value: perf}
	}

	switch {
	case perf >= threshold:
		return Judgement{Status: StatusOnTrack, Value: perf}
	case perf <= 0:
		return Judgement{Status: StatusDeclining, Value: perf}
	default:
		return Judgement{Status: StatusBelowTarget, Value: perf}
	}
}
