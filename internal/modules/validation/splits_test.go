package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/grq-validation/internal/domain"
)

func TestSplitAdjustment(t *testing.T) {
	score := mustDate(t, "2025-06-16")

	bars := []domain.PriceBar{
		flatBar(mustDate(t, "2025-06-16"), 100),
		flatBar(mustDate(t, "2025-06-17"), 102),
		flatBar(mustDate(t, "2025-06-18"), 104),
		{Date: mustDate(t, "2025-06-19"), High: 54, Low: 52, SplitCoefficient: 2.0},
		flatBar(mustDate(t, "2025-06-20"), 54),
	}

	tests := []struct {
		name string
		from string
		want float64
	}{
		{
			name: "split after reference date compounds",
			from: "2025-06-16",
			want: 2.0,
		},
		{
			name: "split on the reference date itself is excluded",
			from: "2025-06-19",
			want: 1.0,
		},
		{
			name: "no later splits",
			from: "2025-06-20",
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitAdjustment(bars, mustDate(t, tt.from))
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("empty history is a no-op", func(t *testing.T) {
		assert.Equal(t, 1.0, SplitAdjustment(nil, score))
	})

	t.Run("multiple splits compound", func(t *testing.T) {
		multi := append([]domain.PriceBar{}, bars...)
		multi = append(multi, domain.PriceBar{
			Date: mustDate(t, "2025-06-25"), High: 19, Low: 17, SplitCoefficient: 3.0,
		})
		assert.Equal(t, 6.0, SplitAdjustment(multi, score))
	})
}

func TestAdjustToCurrent(t *testing.T) {
	bars := []domain.PriceBar{
		flatBar(mustDate(t, "2025-06-16"), 100),
		{Date: mustDate(t, "2025-06-19"), High: 54, Low: 52, SplitCoefficient: 2.0},
	}

	adjusted := AdjustToCurrent(100, bars, mustDate(t, "2025-06-16"))
	assert.Equal(t, 50.0, adjusted)
}

// A split between entry and evaluation must not change the computed
// return: prices halve but so does the adjusted buy price.
func TestTotalReturnUnchangedAcrossSplit(t *testing.T) {
	score := mustDate(t, "2025-06-16")

	noSplit := []domain.PriceBar{
		flatBar(mustDate(t, "2025-06-16"), 100),
		flatBar(mustDate(t, "2025-06-17"), 102),
		flatBar(mustDate(t, "2025-06-18"), 104),
		flatBar(mustDate(t, "2025-06-19"), 106),
		flatBar(mustDate(t, "2025-06-20"), 108),
	}
	withSplit := []domain.PriceBar{
		flatBar(mustDate(t, "2025-06-16"), 100),
		flatBar(mustDate(t, "2025-06-17"), 102),
		flatBar(mustDate(t, "2025-06-18"), 104),
		{Date: mustDate(t, "2025-06-19"), High: 54, Low: 52, SplitCoefficient: 2.0},
		flatBar(mustDate(t, "2025-06-20"), 54),
	}

	asOf := mustDate(t, "2025-06-20")

	plain, err := TotalReturn(noSplit, nil, score, asOf)
	assert.NoError(t, err)

	split, err := TotalReturn(withSplit, nil, score, asOf)
	assert.NoError(t, err)

	assert.InDelta(t, 8.0, plain, 1e-9)
	assert.InDelta(t, plain, split, 1e-9)
}
