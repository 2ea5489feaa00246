package validation

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/grq-validation/internal/domain"
)

// Service runs the per-stock validation pipeline and the portfolio
// aggregation. It holds no mutable state beyond its configuration; every
// call recomputes from the supplied records.
type Service struct {
	cfg           ProjectorConfig
	projector     Projector
	costOfCapital float64 // annual %, the hurdle realized returns are measured against
	log           zerolog.Logger
}

// NewService creates a validation service.
func NewService(cfg ProjectorConfig, costOfCapital float64, log zerolog.Logger) *Service {
	return &Service{
		cfg:           cfg,
		projector:     NewProjector(cfg),
		costOfCapital: costOfCapital,
		log:           log.With().Str("component", "validation").Logger(),
	}
}

// ValidateStock runs the full pipeline for one stock: buy price
// resolution, return calculation, trend fit, projection and judgement.
//
// Returns ErrNoPriceData (wrapped) when no entry price is resolvable; the
// caller excludes the stock from aggregation, nothing else fails.
func (s *Service) ValidateStock(data StockData, scoreDate time.Time) (StockResult, error) {
	scoreDay := domain.Day(scoreDate)
	bars := data.Bars

	buy, err := ResolveBuyPrice(bars, scoreDay)
	if err != nil {
		return StockResult{}, fmt.Errorf("stock %s: %w", data.Record.Stock, err)
	}

	// Everything is anchored to the latest available market data, never
	// to the wall clock: re-running with the same inputs is idempotent.
	latest := domain.Day(bars[len(bars)-1].Date)
	daysElapsed := domain.DaysBetween(scoreDay, latest)

	performance, err := TotalReturn(bars, data.Dividends, scoreDay, latest)
	if err != nil {
		return StockResult{}, fmt.Errorf("stock %s: %w", data.Record.Stock, err)
	}

	targetPct, err := TargetPercentage(bars, data.Record.Target, scoreDay)
	if err != nil {
		return StockResult{}, fmt.Errorf("stock %s: %w", data.Record.Stock, err)
	}

	var trend *TrendLine
	if fitted, err := FitTrend(bars, data.Dividends, scoreDay, latest); err == nil {
		trend = &fitted
	} else {
		s.log.Debug().Str("stock", data.Record.Stock).Err(err).Msg("No trend available")
	}

	var projection *Projection
	if daysElapsed < WindowDays {
		proj := s.projector.Project(trend, performance, &targetPct, daysElapsed)
		projection = &proj
	}

	judgement := Classify(&performance, projection, &targetPct, daysElapsed)

	cutoff := windowEnd(scoreDay, latest)
	divTotal, divCount := dividendSummary(data.Dividends, cutoff)

	currentBar, _ := lastBarAtOrBefore(bars, cutoff)

	cappedDays := daysElapsed
	if cappedDays > WindowDays {
		cappedDays = WindowDays
	}

	return StockResult{
		Stock:          data.Record.Stock,
		Score:          data.Record.Score,
		ScoreDate:      scoreDay,
		BuyPrice:       buy.Price,
		BuyDate:        buy.DateUsed,
		TargetPrice:    AdjustToCurrent(data.Record.Target, bars, scoreDay),
		TargetPercent:  targetPct,
		CurrentPrice:   AdjustToCurrent(currentBar.Mid(), bars, currentBar.Date),
		CurrentDate:    domain.Day(currentBar.Date),
		Performance:    performance,
		HurdleProgress: HurdleProgress(performance, s.costOfCapital, daysElapsed),
		Annualized:     AnnualizedReturn(performance, daysElapsed),
		DaysElapsed:    cappedDays,
		DividendTotal:  divTotal,
		DividendCount:  divCount,
		Trend:          trend,
		Projection:     projection,
		Judgement:      judgement,
	}, nil
}
