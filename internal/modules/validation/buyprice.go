package validation

import (
	"fmt"
	"time"

	"github.com/aristath/grq-validation/internal/domain"
)

// buyPriceSearchDays is how many days past the score date we tolerate a
// gap in trading data before giving up on a stock.
const buyPriceSearchDays = 5

// ResolveBuyPrice determines the reference entry price for a stock as of
// its score date. Markets are closed on weekends and holidays, so the
// score date itself may have no bar; the first bar within scoreDate+0..5
// days is used instead, with (high+low)/2 as the raw price, split-adjusted
// to current-share terms.
//
// Returns ErrNoPriceData when no bar exists in the window. All downstream
// return math depends on a valid entry price, so this is surfaced as a
// hard per-stock failure rather than silently defaulted.
func ResolveBuyPrice(bars []domain.PriceBar, scoreDate time.Time) (BuyPrice, error) {
	day := domain.Day(scoreDate)
	for offset := 0; offset <= buyPriceSearchDays; offset++ {
		candidate := day.AddDate(0, 0, offset)
		if bar, ok := barOn(bars, candidate); ok {
			return BuyPrice{
				Price:    AdjustToCurrent(bar.Mid(), bars, candidate),
				DateUsed: candidate,
			}, nil
		}
	}
	return BuyPrice{}, fmt.Errorf("resolving buy price for %s: %w", domain.FormatDate(day), ErrNoPriceData)
}

// barOn finds the bar for an exact date. Bars are ordered ascending.
func barOn(bars []domain.PriceBar, date time.Time) (domain.PriceBar, bool) {
	day := domain.Day(date)
	for _, bar := range bars {
		if domain.Day(bar.Date).Equal(day) {
			return bar, true
		}
		if bar.Date.After(day) {
			break
		}
	}
	return domain.PriceBar{}, false
}

// lastBarAtOrBefore returns the latest bar not after the given date.
func lastBarAtOrBefore(bars []domain.PriceBar, date time.Time) (domain.PriceBar, bool) {
	day := domain.Day(date)
	found := false
	var last domain.PriceBar
	for _, bar := range bars {
		if domain.Day(bar.Date).After(day) {
			break
		}
		last = bar
		found = true
	}
	return last, found
}
