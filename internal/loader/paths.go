package loader

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aristath/grq-validation/internal/domain"
)

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// DateFromPath extracts the score date from a score file path laid out as
// scores/YYYY/MonthName/DD.tsv.
func DateFromPath(path string) (time.Time, error) {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) < 3 {
		return time.Time{}, fmt.Errorf("cannot extract date from path %q", path)
	}

	yearStr := parts[len(parts)-3]
	monthStr := parts[len(parts)-2]
	dayStr := strings.TrimSuffix(parts[len(parts)-1], ".tsv")

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year %q in path %q", yearStr, path)
	}
	month, ok := monthsByName[strings.ToLower(monthStr)]
	if !ok {
		return time.Time{}, fmt.Errorf("invalid month %q in path %q", monthStr, path)
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q in path %q", dayStr, path)
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != month {
		return time.Time{}, fmt.Errorf("invalid date %d-%d-%d in path %q", year, month, day, path)
	}
	return date, nil
}

// ScoreFileForDate builds the conventional score file path for a date:
// docs/scores/YYYY/MonthName/D.tsv (day without leading zero).
func ScoreFileForDate(docsPath string, date time.Time) string {
	return filepath.Join(
		docsPath, "scores",
		strconv.Itoa(date.Year()),
		date.Month().String(),
		fmt.Sprintf("%d.tsv", date.Day()),
	)
}

// MarketDataPathFor derives the market data CSV path that accompanies a
// score file: same directory, .csv extension.
func MarketDataPathFor(scoreFile string) string {
	return strings.TrimSuffix(scoreFile, ".tsv") + ".csv"
}

// DividendsPathFor derives the dividend CSV path that accompanies a score
// file: same directory, "-dividends.csv" suffix.
func DividendsPathFor(scoreFile string) string {
	return strings.TrimSuffix(scoreFile, ".tsv") + "-dividends.csv"
}

// ScoreDateOf resolves the date for an index entry, preferring the
// explicit index date and falling back to the file path layout.
func ScoreDateOf(entry ScoreEntry, docsPath string) (time.Time, error) {
	if date, err := domain.ParseDate(entry.Date); err == nil {
		return date, nil
	}
	return DateFromPath(entry.ScoreFilePath(docsPath))
}
