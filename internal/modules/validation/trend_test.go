package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitTrendLinearSeries(t *testing.T) {
	score := mustDate(t, "2025-06-16")
	// Price rises 1 per day from 100: cumulative return is exactly 1%/day.
	bars := barSeries(score, 10, func(d int) float64 { return 100 + float64(d) })

	trend, err := FitTrend(bars, nil, score, mustDate(t, "2025-06-26"))
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, trend.Slope, 1e-9)
	assert.Equal(t, 0.0, trend.Intercept)
	assert.Equal(t, 11, trend.DataPoints)
	assert.InDelta(t, 1.0, trend.RSquared, 1e-9)
}

func TestFitTrendInsufficientData(t *testing.T) {
	score := mustDate(t, "2025-06-16")
	bars := barSeries(score, 1, func(d int) float64 { return 100 })

	_, err := FitTrend(bars, nil, score, mustDate(t, "2025-06-17"))
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestFitTrendIgnoresBarsPastWindow(t *testing.T) {
	score := mustDate(t, "2025-06-16")
	bars := barSeries(score, 100, func(d int) float64 { return 100 + float64(d) })

	trend, err := FitTrend(bars, nil, score, bars[len(bars)-1].Date)
	assert.NoError(t, err)
	// Only days 0..90 participate.
	assert.Equal(t, 91, trend.DataPoints)
}

func TestPredicted90Day(t *testing.T) {
	tests := []struct {
		name  string
		slope float64
		want  float64
	}{
		{name: "positive trend extrapolates", slope: 0.2, want: 18.0},
		{name: "floor at total loss", slope: -2.0, want: -100.0},
		{name: "flat", slope: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := TrendLine{Slope: tt.slope}
			assert.InDelta(t, tt.want, line.Predicted90Day(), 1e-9)
		})
	}
}
