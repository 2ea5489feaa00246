package validation

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aristath/grq-validation/internal/domain"
	"github.com/aristath/grq-validation/pkg/formulas"
)

// maxConcurrentStocks bounds the per-stock fan-out.
const maxConcurrentStocks = 8

// ValidatePortfolio composes the per-stock pipeline across every stock of
// a score file and aggregates the results. Stocks are validated
// concurrently; ordering between them does not matter, only the final
// aggregation waits for all of them.
//
// A stock without resolvable price data is excluded from every mean and
// listed in the result; it never aborts the run.
func (s *Service) ValidatePortfolio(ctx context.Context, scoreDate time.Time, stocks []StockData) (PortfolioResult, error) {
	scoreDay := domain.Day(scoreDate)

	results := make([]*StockResult, len(stocks))
	var mu sync.Mutex
	var excluded []string

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentStocks)
	for i, data := range stocks {
		i, data := i, data
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := s.ValidateStock(data, scoreDay)
			if err != nil {
				// Local, recoverable: the stock is omitted from the means.
				s.log.Warn().Str("stock", data.Record.Stock).Err(err).Msg("Excluding stock from aggregation")
				mu.Lock()
				excluded = append(excluded, data.Record.Stock)
				mu.Unlock()
				return nil
			}
			results[i] = &res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PortfolioResult{}, err
	}
	sort.Strings(excluded)

	var included []StockResult
	var targets, performances []float64
	for _, res := range results {
		if res == nil {
			continue
		}
		included = append(included, *res)
		targets = append(targets, res.TargetPercent)
		performances = append(performances, res.Performance)
	}

	targetPct := DefaultTargetPercent
	if len(targets) > 0 {
		targetPct = formulas.Mean(targets)
	}

	result := PortfolioResult{
		ScoreDate:      scoreDay,
		TotalStocks:    len(stocks),
		StocksWithData: len(included),
		TargetPercent:  targetPct,
		Stocks:         included,
		Excluded:       excluded,
		Judgement:      Judgement{Status: StatusPending},
	}
	if len(included) == 0 {
		return result, nil
	}

	performance := formulas.Mean(performances)
	daysElapsed := s.portfolioDaysElapsed(scoreDay, stocks, excluded)

	var trend *TrendLine
	if fitted, err := s.portfolioTrend(scoreDay, stocks, excluded); err == nil {
		trend = &fitted
	} else {
		s.log.Debug().Err(err).Msg("No portfolio trend available")
	}

	var projection *Projection
	if daysElapsed < WindowDays {
		threshold := s.cfg.PortfolioTrendThreshold(daysElapsed)
		proj := s.projector.ProjectWithThreshold(trend, performance, &targetPct, daysElapsed, threshold)
		projection = &proj
	}

	cappedDays := daysElapsed
	if cappedDays > WindowDays {
		cappedDays = WindowDays
	}

	result.Performance = performance
	result.Annualized = AnnualizedReturn(performance, daysElapsed)
	result.DaysElapsed = cappedDays
	result.Trend = trend
	result.Projection = projection
	result.Judgement = Classify(&performance, projection, &targetPct, daysElapsed)

	return result, nil
}

// portfolioDaysElapsed measures score date to the latest market data date
// across all included stocks.
func (s *Service) portfolioDaysElapsed(scoreDay time.Time, stocks []StockData, excluded []string) int {
	days := 0
	for _, data := range stocks {
		if len(data.Bars) == 0 || isExcluded(excluded, data.Record.Stock) {
			continue
		}
		latest := domain.Day(data.Bars[len(data.Bars)-1].Date)
		if d := domain.DaysBetween(scoreDay, latest); d > days {
			days = d
		}
	}
	return days
}

// portfolioTrend fits the forced-origin regression over the cross-stock
// mean return per elapsed day: for each day with data, the average of
// every included stock's cumulative return on that day.
func (s *Service) portfolioTrend(scoreDay time.Time, stocks []StockData, excluded []string) (TrendLine, error) {
	sums := map[int]float64{}
	counts := map[int]int{}

	for _, data := range stocks {
		if isExcluded(excluded, data.Record.Stock) {
			continue
		}
		buy, err := ResolveBuyPrice(data.Bars, scoreDay)
		if err != nil {
			continue
		}
		latest := domain.Day(data.Bars[len(data.Bars)-1].Date)
		xs, ys := returnSeries(data.Bars, data.Dividends, buy, scoreDay, latest)
		for i, x := range xs {
			day := int(x)
			sums[day] += ys[i]
			counts[day]++
		}
	}

	days := make([]int, 0, len(sums))
	for day := range sums {
		days = append(days, day)
	}
	sort.Ints(days)

	xs := make([]float64, len(days))
	ys := make([]float64, len(days))
	for i, day := range days {
		xs[i] = float64(day)
		ys[i] = sums[day] / float64(counts[day])
	}

	return fitSeries(xs, ys)
}

func isExcluded(excluded []string, stock string) bool {
	for _, name := range excluded {
		if name == stock {
			return true
		}
	}
	return false
}
