package validation

import (
	"time"

	"github.com/aristath/grq-validation/internal/domain"
)

// SplitAdjustment returns the factor by which a price quoted on
// historicalDate must be divided to restate it in current-share-count
// terms. It compounds every split coefficient recorded strictly after
// historicalDate. Historical bars are never mutated; the adjustment always
// scans forward from the reference date.
//
// With no price history (or no later splits) the factor is 1.0, a no-op.
func SplitAdjustment(bars []domain.PriceBar, historicalDate time.Time) float64 {
	adjustment := 1.0
	for _, bar := range bars {
		if !bar.Date.After(historicalDate) {
			continue
		}
		if bar.SplitCoefficient > 1.0 {
			adjustment *= bar.SplitCoefficient
		}
	}
	return adjustment
}

// AdjustToCurrent restates a historically-quoted price or target into
// current-share-count terms.
func AdjustToCurrent(price float64, bars []domain.PriceBar, historicalDate time.Time) float64 {
	return price / SplitAdjustment(bars, historicalDate)
}
