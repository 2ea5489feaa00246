package formulas

import "math"

// DaysPerYear is the average calendar year length used for compounding.
const DaysPerYear = 365.25

// Annualize converts a percentage return realized over actualDays into a
// compounded annual rate.
//
// Formula: ((1 + performance/100)^(365.25/actualDays) - 1) * 100
//
// actualDays must be the real number of days the return was earned over.
// Using a fixed divisor (e.g. always 90) massively understates early-period
// annualized rates: 2% over 5 days compounds to ~325%/yr, not ~8%.
func Annualize(performance float64, actualDays int) float64 {
	if performance == 0 || actualDays <= 0 {
		return 0
	}
	return (math.Pow(1+performance/100, DaysPerYear/float64(actualDays)) - 1) * 100
}

// PeriodRate compounds an annual percentage rate down to a period of the
// given number of days. The inverse of Annualize.
func PeriodRate(annualRate float64, days int) float64 {
	if days <= 0 {
		return 0
	}
	return (math.Pow(1+annualRate/100, float64(days)/DaysPerYear) - 1) * 100
}
