package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/grq-validation/pkg/formulas"
)

func TestAnnualizedReturn(t *testing.T) {
	t.Run("short periods compound dramatically", func(t *testing.T) {
		// 2% over 5 days is ~325%/yr, not ~8%.
		got := AnnualizedReturn(2, 5)
		assert.InDelta(t, 324.86, got, 0.1)
	})

	t.Run("days capped at the window", func(t *testing.T) {
		assert.Equal(t, AnnualizedReturn(10, 90), AnnualizedReturn(10, 120))
	})

	t.Run("days never padded up to the window", func(t *testing.T) {
		assert.Greater(t, AnnualizedReturn(2, 5), AnnualizedReturn(2, 90))
	})

	t.Run("zero performance", func(t *testing.T) {
		assert.Equal(t, 0.0, AnnualizedReturn(0, 45))
	})

	t.Run("round trips with the period rate", func(t *testing.T) {
		period := formulas.PeriodRate(10, 45)
		assert.InDelta(t, 10.0, formulas.Annualize(period, 45), 1e-9)
	})
}

func TestHurdleProgress(t *testing.T) {
	t.Run("earning exactly the hurdle is 100 percent", func(t *testing.T) {
		hurdle := formulas.PeriodRate(10, 90)
		assert.InDelta(t, 100.0, HurdleProgress(hurdle, 10, 90), 1e-9)
	})

	t.Run("half the hurdle is 50 percent", func(t *testing.T) {
		hurdle := formulas.PeriodRate(10, 45)
		assert.InDelta(t, 50.0, HurdleProgress(hurdle/2, 10, 45), 1e-9)
	})

	t.Run("losses go negative", func(t *testing.T) {
		assert.Less(t, HurdleProgress(-2, 10, 45), 0.0)
	})

	t.Run("zero cost of capital yields no hurdle", func(t *testing.T) {
		assert.Equal(t, 0.0, HurdleProgress(5, 0, 45))
	})

	t.Run("days capped at the window", func(t *testing.T) {
		assert.Equal(t, HurdleProgress(5, 10, 90), HurdleProgress(5, 10, 150))
	})
}
