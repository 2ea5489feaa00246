package validation

import (
	"fmt"
	"time"

	"github.com/aristath/grq-validation/internal/domain"
)

// windowEnd caps an evaluation date at scoreDate + 90 days. The window is
// always anchored to the score date, never to the wall clock.
func windowEnd(scoreDate, asOf time.Time) time.Time {
	end := domain.Day(scoreDate).AddDate(0, 0, WindowDays)
	day := domain.Day(asOf)
	if day.Before(end) {
		return day
	}
	return end
}

// TotalReturn computes the cumulative return percentage for a stock from
// its score date up to asOf (capped at the 90-day window): price return on
// the split-adjusted (high+low)/2 of the latest bar within the window,
// plus dividends paid per share up to that date, both relative to the
// resolved buy price.
func TotalReturn(bars []domain.PriceBar, dividends []domain.DividendEvent, scoreDate, asOf time.Time) (float64, error) {
	cutoff := windowEnd(scoreDate, asOf)

	last, ok := lastBarAtOrBefore(bars, cutoff)
	if !ok {
		return 0, fmt.Errorf("no bars up to %s: %w", domain.FormatDate(cutoff), ErrNoPriceData)
	}

	buy, err := ResolveBuyPrice(bars, scoreDate)
	if err != nil {
		return 0, err
	}

	currentPrice := AdjustToCurrent(last.Mid(), bars, last.Date)
	priceReturn := (currentPrice - buy.Price) / buy.Price * 100

	dividendReturn := dividendPerShare(dividends, cutoff) / buy.Price * 100

	return priceReturn + dividendReturn, nil
}

// TargetPercentage computes the target price as a percentage gain over the
// buy price, with the target split-adjusted from the score date. Fails
// under the same conditions as the buy price resolution.
func TargetPercentage(bars []domain.PriceBar, target float64, scoreDate time.Time) (float64, error) {
	buy, err := ResolveBuyPrice(bars, scoreDate)
	if err != nil {
		return 0, err
	}
	adjustedTarget := AdjustToCurrent(target, bars, scoreDate)
	return (adjustedTarget - buy.Price) / buy.Price * 100, nil
}

// dividendPerShare sums dividend amounts with an ex-dividend date not
// after the cutoff. Dividend files are generated per score date, so the
// set only contains events inside the evaluation window.
func dividendPerShare(dividends []domain.DividendEvent, cutoff time.Time) float64 {
	day := domain.Day(cutoff)
	total := 0.0
	for _, div := range dividends {
		if !domain.Day(div.ExDate).After(day) {
			total += div.Amount
		}
	}
	return total
}

// dividendSummary reports the total amount and count of dividends paid up
// to the cutoff, for reporting alongside the return.
func dividendSummary(dividends []domain.DividendEvent, cutoff time.Time) (total float64, count int) {
	day := domain.Day(cutoff)
	for _, div := range dividends {
		if !domain.Day(div.ExDate).After(day) {
			total += div.Amount
			count++
		}
	}
	return total, count
}
