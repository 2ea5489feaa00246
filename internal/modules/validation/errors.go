package validation

import "errors"

var (
	// ErrNoPriceData means no price bar could be resolved within the
	// forward search window of a score date. This fails the pipeline for
	// that stock only; the portfolio aggregation simply excludes it.
	ErrNoPriceData = errors.New("no price data available")

	// ErrInsufficientData means fewer than the minimum number of usable
	// points were available for a regression. Callers fall back to a
	// non-trend projection method, they do not abort.
	ErrInsufficientData = errors.New("insufficient data points for regression")
)
