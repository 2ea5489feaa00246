package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/aristath/grq-validation/internal/domain"
)

// LoadDividends reads a dividend CSV (date,symbol,amount) into per-symbol
// event slices, ordered ascending by ex-dividend date. A missing file is
// not an error: many score windows simply have no dividends.
func LoadDividends(path string) (map[string][]domain.DividendEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]domain.DividendEvent{}, nil
		}
		return nil, fmt.Errorf("failed to open dividend file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read dividend file %s: %w", path, err)
	}

	events := map[string][]domain.DividendEvent{}
	for i, row := range rows {
		if i == 0 || len(row) < 3 {
			continue // header
		}
		date, err := domain.ParseDate(strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}
		symbol := strings.TrimSpace(row[1])
		amount := parseFloat(row[2])
		if symbol == "" || amount <= 0 {
			continue
		}
		events[symbol] = append(events[symbol], domain.DividendEvent{ExDate: date, Amount: amount})
	}

	for symbol := range events {
		sort.Slice(events[symbol], func(i, j int) bool {
			return events[symbol][i].ExDate.Before(events[symbol][j].ExDate)
		})
	}
	return events, nil
}
