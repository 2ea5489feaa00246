package validation

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/aristath/grq-validation/internal/domain"
)

// minTrendPoints is the smallest sample that yields a usable regression.
const minTrendPoints = 3

// FitTrend fits a linear regression of cumulative return against days
// elapsed since the score date, using every bar between the score date and
// end (callers normally pass the latest available bar date, not today).
//
// The intercept is forced to zero: return is zero at entry by definition,
// so the fit is through the origin. R-squared is computed against the
// forced-origin line and serves purely as a confidence proxy downstream,
// it never alters the fit.
//
// Returns ErrInsufficientData with fewer than three usable points.
func FitTrend(bars []domain.PriceBar, dividends []domain.DividendEvent, scoreDate, end time.Time) (TrendLine, error) {
	buy, err := ResolveBuyPrice(bars, scoreDate)
	if err != nil {
		return TrendLine{}, err
	}

	xs, ys := returnSeries(bars, dividends, buy, scoreDate, end)
	return fitSeries(xs, ys)
}

// fitSeries runs the forced-origin regression over a prepared sample.
func fitSeries(xs, ys []float64) (TrendLine, error) {
	if len(xs) < minTrendPoints {
		return TrendLine{}, fmt.Errorf("%d points: %w", len(xs), ErrInsufficientData)
	}

	_, slope := stat.LinearRegression(xs, ys, nil, true)
	rSquared := stat.RSquared(xs, ys, nil, 0, slope)

	return TrendLine{
		Slope:      slope,
		Intercept:  0,
		DataPoints: len(xs),
		RSquared:   rSquared,
	}, nil
}

// returnSeries builds the (days since score date, cumulative return %)
// sample series for the regression. Equivalent to calling TotalReturn once
// per bar, but resolves the buy price a single time and accumulates
// dividends in one pass.
func returnSeries(bars []domain.PriceBar, dividends []domain.DividendEvent, buy BuyPrice, scoreDate, end time.Time) (xs, ys []float64) {
	start := domain.Day(scoreDate)
	cutoff := windowEnd(scoreDate, end)

	for _, bar := range bars {
		day := domain.Day(bar.Date)
		if day.Before(start) {
			continue
		}
		if day.After(cutoff) {
			break
		}

		price := AdjustToCurrent(bar.Mid(), bars, bar.Date)
		priceReturn := (price - buy.Price) / buy.Price * 100
		divReturn := dividendPerShare(dividends, day) / buy.Price * 100

		xs = append(xs, float64(domain.DaysBetween(start, day)))
		ys = append(ys, priceReturn+divReturn)
	}
	return xs, ys
}
