package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/grq-validation/internal/modules/validation"
	"github.com/aristath/grq-validation/pkg/logger"
)

func newTestRepo(t *testing.T) *ResultsRepository {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.New(logger.Config{Level: "error", Pretty: false})
	return NewResultsRepository(db, log)
}

func samplePortfolioResult(scoreDate time.Time) validation.PortfolioResult {
	trend := validation.TrendLine{Slope: 0.25, DataPoints: 30, RSquared: 0.91}
	projection := validation.Projection{
		Projected90Day: 11.2,
		Method:         validation.MethodDampenedTrend,
		Confidence:     0.72,
		DaysElapsed:    45,
	}

	return validation.PortfolioResult{
		ScoreDate:      scoreDate,
		TotalStocks:    2,
		StocksWithData: 1,
		TargetPercent:  20,
		Performance:    11,
		Annualized:     133.2,
		DaysElapsed:    45,
		Trend:          &trend,
		Projection:     &projection,
		Judgement:      validation.Judgement{Status: validation.StatusBelowTarget, Value: 11.2},
		Excluded:       []string{"NYSE:CCC"},
		Stocks: []validation.StockResult{
			{
				Stock:          "NYSE:SEM",
				Score:          95.5,
				ScoreDate:      scoreDate,
				BuyPrice:       100,
				BuyDate:        scoreDate,
				TargetPrice:    120,
				TargetPercent:  20,
				CurrentPrice:   110,
				CurrentDate:    scoreDate.AddDate(0, 0, 45),
				Performance:    11,
				HurdleProgress: 930,
				Annualized:     133.2,
				DaysElapsed:    45,
				DividendTotal:  1,
				DividendCount:  1,
				Trend:          &trend,
				Projection:     &projection,
				Judgement:      validation.Judgement{Status: validation.StatusBelowTarget, Value: 11.2},
			},
		},
	}
}

func TestResultsRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	scoreDate := time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)

	run, err := repo.CreateRun(1)
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)

	require.NoError(t, repo.SavePortfolioResult(run.ID, samplePortfolioResult(scoreDate)))
	require.NoError(t, repo.FinishRun(run.ID, 1, 0))

	latest, err := repo.LatestRun()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, run.ID, latest.ID)
	assert.Equal(t, 1, latest.Processed)
	assert.Equal(t, 0, latest.Errors)

	portfolios, err := repo.PortfolioResults(run.ID)
	require.NoError(t, err)
	require.Len(t, portfolios, 1)
	p := portfolios[0]
	assert.Equal(t, "2025-06-16", p.ScoreDate)
	assert.Equal(t, 2, p.TotalStocks)
	assert.Equal(t, 1, p.StocksWithData)
	assert.Equal(t, 11.0, p.Performance)
	require.NotNil(t, p.TrendSlope)
	assert.Equal(t, 0.25, *p.TrendSlope)
	assert.Equal(t, string(validation.StatusBelowTarget), p.Judgement)

	stocks, err := repo.StockResults(run.ID, "2025-06-16")
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	s := stocks[0]
	assert.Equal(t, "NYSE:SEM", s.Stock)
	assert.Equal(t, 100.0, s.BuyPrice)
	assert.Equal(t, "2025-06-16", s.BuyDate)
	assert.Equal(t, 45, s.DaysElapsed)
	require.NotNil(t, s.Projected)
	assert.Equal(t, 11.2, *s.Projected)
	require.NotNil(t, s.ProjectionMethod)
	assert.Equal(t, validation.MethodDampenedTrend, *s.ProjectionMethod)
}

func TestSavePortfolioResultOverwrites(t *testing.T) {
	repo := newTestRepo(t)
	scoreDate := time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC)

	run, err := repo.CreateRun(1)
	require.NoError(t, err)

	result := samplePortfolioResult(scoreDate)
	require.NoError(t, repo.SavePortfolioResult(run.ID, result))

	// Re-saving the same score date within a run replaces, not duplicates.
	result.Performance = 12.5
	require.NoError(t, repo.SavePortfolioResult(run.ID, result))

	portfolios, err := repo.PortfolioResults(run.ID)
	require.NoError(t, err)
	require.Len(t, portfolios, 1)
	assert.Equal(t, 12.5, portfolios[0].Performance)
}

func TestNullableProjectionColumns(t *testing.T) {
	repo := newTestRepo(t)
	scoreDate := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)

	run, err := repo.CreateRun(1)
	require.NoError(t, err)

	// Closed windows carry no trend or projection.
	result := samplePortfolioResult(scoreDate)
	result.Trend = nil
	result.Projection = nil
	result.Stocks[0].Trend = nil
	result.Stocks[0].Projection = nil
	require.NoError(t, repo.SavePortfolioResult(run.ID, result))

	portfolios, err := repo.PortfolioResults(run.ID)
	require.NoError(t, err)
	require.Len(t, portfolios, 1)
	assert.Nil(t, portfolios[0].TrendSlope)

	stocks, err := repo.StockResults(run.ID, "2025-10-01")
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Nil(t, stocks[0].Projected)
	assert.Nil(t, stocks[0].ProjectionMethod)
}

func TestLatestRunEmpty(t *testing.T) {
	repo := newTestRepo(t)

	latest, err := repo.LatestRun()
	require.NoError(t, err)
	assert.Nil(t, latest)
}
