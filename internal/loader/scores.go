// Package loader reads score, market data, dividend and index files into
// the in-memory records the validation engine consumes. It owns no
// algorithmic logic; malformed optional fields degrade to absent values,
// they never fail a load.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/aristath/grq-validation/internal/domain"
)

// Score file column headers, as published.
const (
	colStock            = "Stock"
	colScore            = "Score"
	colTarget           = "Target"
	colExDividendDate   = "ExDividendDate"
	colDividendPerShare = "DividendPerShare"
	colNotes            = "Notes"
	colIntrinsicBasic   = "intrinsicValuePerShareBasic"
	colIntrinsicAdj     = "intrinsicValuePerShareAdjusted"
)

// LoadScoreFile reads a tab-delimited score file. Rows without a valid
// stock symbol are skipped; malformed optional columns are left at their
// zero values.
func LoadScoreFile(path string) ([]domain.ScoreRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open score file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read score file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("score file %s is empty", path)
	}

	cols := map[string]int{}
	for i, name := range rows[0] {
		cols[strings.TrimSpace(name)] = i
	}
	if _, ok := cols[colStock]; !ok {
		return nil, fmt.Errorf("score file %s has no %q column", path, colStock)
	}

	var records []domain.ScoreRecord
	for _, row := range rows[1:] {
		field := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		stock := field(colStock)
		if !domain.ValidSymbol(stock) {
			continue
		}

		rec := domain.ScoreRecord{
			Stock:            stock,
			Score:            parseFloat(field(colScore)),
			Target:           parseFloat(field(colTarget)),
			DividendPerShare: parseFloat(field(colDividendPerShare)),
			Notes:            field(colNotes),
		}
		if d, err := domain.ParseDate(field(colExDividendDate)); err == nil {
			rec.ExDividendDate = &d
		}
		rec.IntrinsicValueBasic = parseOptionalFloat(field(colIntrinsicBasic))
		rec.IntrinsicValueAdjusted = parseOptionalFloat(field(colIntrinsicAdj))

		records = append(records, rec)
	}
	return records, nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseOptionalFloat(s string) *float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
