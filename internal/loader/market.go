package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aristath/grq-validation/internal/domain"
)

// LoadMarketData reads a long-format market data CSV
// (date,ticker,high,low,open,close[,split_coefficient]) into per-ticker
// price bar slices, ordered ascending by date. The split coefficient
// column is optional and defaults to 1.0 (no split).
func LoadMarketData(path string) (map[string][]domain.PriceBar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open market data file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read market data file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("market data file %s is empty", path)
	}

	cols := map[string]int{}
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "ticker", "high", "low", "open", "close"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("market data file %s has no %q column", path, required)
		}
	}
	splitIdx, hasSplit := cols["split_coefficient"]

	bars := map[string][]domain.PriceBar{}
	for _, row := range rows[1:] {
		if len(row) < 6 {
			continue
		}
		date, err := domain.ParseDate(row[cols["date"]])
		if err != nil {
			continue
		}
		ticker := strings.TrimSpace(row[cols["ticker"]])
		if ticker == "" {
			continue
		}

		bar := domain.PriceBar{
			Date:             date,
			High:             parseFloat(row[cols["high"]]),
			Low:              parseFloat(row[cols["low"]]),
			Open:             parseFloat(row[cols["open"]]),
			Close:            parseFloat(row[cols["close"]]),
			SplitCoefficient: 1.0,
		}
		if hasSplit && splitIdx < len(row) {
			if v := parseFloat(row[splitIdx]); v > 0 {
				bar.SplitCoefficient = v
			}
		}
		bars[ticker] = append(bars[ticker], bar)
	}

	for ticker := range bars {
		sort.Slice(bars[ticker], func(i, j int) bool {
			return bars[ticker][i].Date.Before(bars[ticker][j].Date)
		})
	}
	return bars, nil
}
