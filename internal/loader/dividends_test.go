package loader

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDividends(t *testing.T) {
	content := "date,symbol,amount\n" +
		"2025-07-15,SEM,0.47\n" +
		"2025-06-25,SEM,0.45\n" +
		"2025-07-01,PPC,0.30\n" +
		"2025-07-02,PPC,0\n" + // zero amounts are noise
		"bad-date,PPC,0.30\n"

	events, err := LoadDividends(writeFile(t, "16-dividends.csv", content))
	require.NoError(t, err)

	sem := events["SEM"]
	require.Len(t, sem, 2)
	// Sorted ascending by ex-dividend date.
	assert.Equal(t, "2025-06-25", sem[0].ExDate.Format("2006-01-02"))
	assert.Equal(t, 0.45, sem[0].Amount)
	assert.Equal(t, "2025-07-15", sem[1].ExDate.Format("2006-01-02"))

	require.Len(t, events["PPC"], 1)
}

func TestLoadDividendsMissingFileIsEmpty(t *testing.T) {
	events, err := LoadDividends(filepath.Join(t.TempDir(), "absent-dividends.csv"))
	require.NoError(t, err)
	assert.Empty(t, events)
}
