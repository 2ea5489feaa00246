package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aristath/grq-validation/internal/domain"
)

// ScoreEntry is one published score file listed in the docs index.
type ScoreEntry struct {
	Date string `json:"date"` // YYYY-MM-DD
	File string `json:"file"` // relative to docs/scores
}

// Index is the docs/index.json manifest of all published score files.
type Index struct {
	Scores []ScoreEntry `json:"scores"`
}

// LoadIndex reads the index.json manifest from the docs directory.
func LoadIndex(docsPath string) (Index, error) {
	path := filepath.Join(docsPath, "index.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return Index{}, fmt.Errorf("failed to read index %s: %w", path, err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return Index{}, fmt.Errorf("failed to parse index %s: %w", path, err)
	}
	return idx, nil
}

// FilterRecent keeps entries whose score date is within maxAgeDays of
// asOf. Entries with unparseable dates are dropped. A score file older
// than the full window plus slack cannot change anymore, so routine runs
// skip it.
func FilterRecent(entries []ScoreEntry, asOf time.Time, maxAgeDays int) []ScoreEntry {
	cutoff := domain.Day(asOf).AddDate(0, 0, -maxAgeDays)

	var recent []ScoreEntry
	for _, entry := range entries {
		date, err := domain.ParseDate(entry.Date)
		if err != nil {
			continue
		}
		if !date.Before(cutoff) {
			recent = append(recent, entry)
		}
	}
	return recent
}

// ScoreFilePath resolves an index entry to its absolute path.
func (e ScoreEntry) ScoreFilePath(docsPath string) string {
	return filepath.Join(docsPath, "scores", filepath.FromSlash(e.File))
}
