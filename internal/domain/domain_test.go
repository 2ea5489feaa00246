package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay(t *testing.T) {
	noon := time.Date(2025, time.June, 16, 12, 30, 45, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC), Day(noon))
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetween(from, from))
	assert.Equal(t, 45, DaysBetween(from, from.AddDate(0, 0, 45)))
	assert.Equal(t, -1, DaysBetween(from, from.AddDate(0, 0, -1)))
	// Time of day is irrelevant.
	assert.Equal(t, 1, DaysBetween(from.Add(23*time.Hour), from.AddDate(0, 0, 1)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-16")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-16", FormatDate(d))

	_, err = ParseDate("16/06/2025")
	assert.Error(t, err)
}

func TestPriceBarMid(t *testing.T) {
	bar := PriceBar{High: 46, Low: 44}
	assert.Equal(t, 45.0, bar.Mid())
}

func TestValidSymbol(t *testing.T) {
	tests := []struct {
		symbol string
		want   bool
	}{
		{symbol: "SEM", want: true},
		{symbol: "NYSE:SEM", want: true},
		{symbol: "BRK.A", want: true},
		{symbol: "ABC123", want: true},
		{symbol: "", want: false},
		{symbol: "NOT A SYMBOL", want: false},
		{symbol: "WAYTOOLONGSYM", want: false},
		{symbol: "BAD$", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidSymbol(tt.symbol))
		})
	}
}
