// Package runner orchestrates validation runs: it walks the published
// score index, loads each score file with its market data and dividends,
// feeds them through the validation engine and persists the results.
package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/grq-validation/internal/domain"
	"github.com/aristath/grq-validation/internal/loader"
	"github.com/aristath/grq-validation/internal/modules/validation"
	"github.com/aristath/grq-validation/internal/store"
)

// Runner coordinates loading, validation and persistence for score files.
type Runner struct {
	docsPath   string
	maxAgeDays int
	svc        *validation.Service
	repo       *store.ResultsRepository
	log        zerolog.Logger
}

// New creates a runner. maxAgeDays bounds which score files a routine run
// revisits; a closed window cannot change anymore.
func New(docsPath string, maxAgeDays int, svc *validation.Service, repo *store.ResultsRepository, log zerolog.Logger) *Runner {
	return &Runner{
		docsPath:   docsPath,
		maxAgeDays: maxAgeDays,
		svc:        svc,
		repo:       repo,
		log:        log.With().Str("component", "runner").Logger(),
	}
}

// RunAll validates every score file in the index. With includeAll false,
// score files older than the recency window are skipped. Per-file
// failures are logged and counted, they never abort the run.
func (r *Runner) RunAll(ctx context.Context, includeAll bool) (store.Run, error) {
	index, err := loader.LoadIndex(r.docsPath)
	if err != nil {
		return store.Run{}, err
	}

	entries := index.Scores
	if includeAll {
		r.log.Info().Int("count", len(entries)).Msg("Processing all score files")
	} else {
		entries = loader.FilterRecent(entries, time.Now().UTC(), r.maxAgeDays)
		r.log.Info().
			Int("recent", len(entries)).
			Int("total", len(index.Scores)).
			Msg("Filtered score files to recency window")
	}

	run, err := r.repo.CreateRun(len(entries))
	if err != nil {
		return store.Run{}, err
	}

	processed, errored := 0, 0
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return run, err
		}

		r.log.Info().
			Int("n", i+1).
			Int("of", len(entries)).
			Str("file", entry.File).
			Str("date", entry.Date).
			Msg("Processing score file")

		result, err := r.runEntry(ctx, entry)
		if err != nil {
			r.log.Error().Err(err).Str("file", entry.File).Msg("Failed to process score file")
			errored++
			continue
		}

		if err := r.repo.SavePortfolioResult(run.ID, result); err != nil {
			r.log.Error().Err(err).Str("file", entry.File).Msg("Failed to persist results")
			errored++
			continue
		}
		processed++
	}

	if err := r.repo.FinishRun(run.ID, processed, errored); err != nil {
		r.log.Error().Err(err).Msg("Failed to finalize run")
	}
	run.Processed = processed
	run.Errors = errored

	r.log.Info().
		Int("processed", processed).
		Int("errors", errored).
		Msg("Validation run completed")
	return run, nil
}

// RunDate validates the single score file published on the given date.
func (r *Runner) RunDate(ctx context.Context, date time.Time) (validation.PortfolioResult, error) {
	entry := loader.ScoreEntry{
		Date: domain.FormatDate(date),
		File: strings.TrimPrefix(
			loader.ScoreFileForDate("", date), "scores/"),
	}
	// Prefer the index entry when present, so file naming stays
	// consistent with what was published.
	if index, err := loader.LoadIndex(r.docsPath); err == nil {
		for _, candidate := range index.Scores {
			if candidate.Date == entry.Date {
				entry = candidate
				break
			}
		}
	}
	return r.runEntry(ctx, entry)
}

// runEntry loads one score file with its companion data files and runs
// the portfolio validation.
func (r *Runner) runEntry(ctx context.Context, entry loader.ScoreEntry) (validation.PortfolioResult, error) {
	scoreFile := entry.ScoreFilePath(r.docsPath)

	scoreDate, err := loader.ScoreDateOf(entry, r.docsPath)
	if err != nil {
		return validation.PortfolioResult{}, err
	}

	records, err := loader.LoadScoreFile(scoreFile)
	if err != nil {
		return validation.PortfolioResult{}, err
	}

	bars, err := loader.LoadMarketData(loader.MarketDataPathFor(scoreFile))
	if err != nil {
		return validation.PortfolioResult{}, err
	}

	dividends, err := loader.LoadDividends(loader.DividendsPathFor(scoreFile))
	if err != nil {
		return validation.PortfolioResult{}, err
	}

	stocks := make([]validation.StockData, 0, len(records))
	for _, rec := range records {
		stocks = append(stocks, validation.StockData{
			Record:    rec,
			Bars:      lookupSeries(bars, rec.Stock),
			Dividends: lookupSeries(dividends, rec.Stock),
		})
	}

	result, err := r.svc.ValidatePortfolio(ctx, scoreDate, stocks)
	if err != nil {
		return validation.PortfolioResult{}, fmt.Errorf("validating %s: %w", entry.File, err)
	}
	return result, nil
}

// lookupSeries finds the data keyed by a score file stock id. Score files
// carry exchange-prefixed ids ("NYSE:SEM") while companion CSVs may key
// by the bare ticker.
func lookupSeries[T any](byTicker map[string][]T, stock string) []T {
	if series, ok := byTicker[stock]; ok {
		return series
	}
	if _, bare, found := strings.Cut(stock, ":"); found {
		return byTicker[bare]
	}
	return nil
}
