package validation

import (
	"testing"
	"time"

	"github.com/aristath/grq-validation/internal/domain"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

// flatBar builds a bar whose mid price is exactly price.
func flatBar(date time.Time, price float64) domain.PriceBar {
	return domain.PriceBar{
		Date:             date,
		High:             price + 1,
		Low:              price - 1,
		Open:             price,
		Close:            price,
		SplitCoefficient: 1.0,
	}
}

// barSeries builds consecutive daily bars for days 0..days with mid
// prices from the price function.
func barSeries(start time.Time, days int, price func(day int) float64) []domain.PriceBar {
	bars := make([]domain.PriceBar, 0, days+1)
	for d := 0; d <= days; d++ {
		bars = append(bars, flatBar(start.AddDate(0, 0, d), price(d)))
	}
	return bars
}

func floatPtr(v float64) *float64 { return &v }
