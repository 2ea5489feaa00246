package validation

import "github.com/aristath/grq-validation/pkg/formulas"

// AnnualizedReturn compounds a realized or projected return over the
// actual elapsed days into an annual rate. The day count is capped at the
// 90-day window but never padded up to it: a 2% return after 5 days
// annualizes over 5 days, not 90.
func AnnualizedReturn(performance float64, daysElapsed int) float64 {
	days := daysElapsed
	if days > WindowDays {
		days = WindowDays
	}
	return formulas.Annualize(performance, days)
}

// HurdleProgress reports the share (in percent) of the period
// cost-of-capital hurdle a position has earned so far. The annual hurdle
// rate is compounded down to the elapsed-day period before comparing.
func HurdleProgress(performance, costOfCapital float64, daysElapsed int) float64 {
	days := daysElapsed
	if days > WindowDays {
		days = WindowDays
	}
	hurdle := formulas.PeriodRate(costOfCapital, days)
	if hurdle == 0 {
		return 0
	}
	return performance / hurdle * 100
}
