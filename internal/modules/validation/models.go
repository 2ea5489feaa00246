// Package validation implements the performance and projection engine for
// published score files. It resolves buy prices from trading history,
// computes realized returns against 90-day targets, fits a through-origin
// trend line, projects the 90-day outcome before the window closes and
// classifies each position with a judgement label.
//
// The engine is a pure computation over immutable in-memory records: every
// derived value (buy price, trend line, projection, judgement) is recomputed
// from scratch per call, so all functions are safe to invoke concurrently
// for distinct stocks.
package validation

import (
	"time"

	"github.com/aristath/grq-validation/internal/domain"
)

// WindowDays is the evaluation window anchored to the score date.
const WindowDays = 90

// BuyPrice is the resolved entry price for a stock as of its score date,
// in current-share-count terms.
type BuyPrice struct {
	Price    float64   `json:"price"`
	DateUsed time.Time `json:"date_used"`
}

// TrendLine is a linear regression of cumulative return against elapsed
// days. The intercept is always zero: return is zero by definition on the
// score date.
type TrendLine struct {
	Slope      float64 `json:"slope"`      // percent return per day
	Intercept  float64 `json:"intercept"`  // always 0
	DataPoints int     `json:"data_points"`
	RSquared   float64 `json:"r_squared"` // fit quality against the forced-origin line
}

// Predicted90Day extrapolates the trend to the full 90-day window. A
// position cannot lose more than 100%, so the floor is -100.
func (t TrendLine) Predicted90Day() float64 {
	predicted := t.Slope * WindowDays
	if predicted < -100 {
		return -100
	}
	return predicted
}

// Projection method labels.
const (
	MethodDampenedTrend  = "dampened_trend"
	MethodTargetAnchored = "target_anchored"
	MethodTrajectory     = "realistic_trajectory"
	MethodMeanReversion  = "mean_reversion"
)

// MinTrustedConfidence is the gate below which a projection must be treated
// as insufficient data. The comparison is strict: a projection at exactly
// 0.2 is not trusted.
const MinTrustedConfidence = 0.2

// Projection is a forecast of the 90-day outcome made before the window
// closes. Confidence is a [0,1] weight, not a probability.
type Projection struct {
	Projected90Day     float64  `json:"projected_90_day"`
	Method             string   `json:"method"`
	Confidence         float64  `json:"confidence"`
	DaysElapsed        int      `json:"days_elapsed"`
	CurrentPerformance float64  `json:"current_performance"`
	TargetPercentage   *float64 `json:"target_percentage,omitempty"`
}

// Trusted reports whether downstream consumers may rely on the projection.
func (p Projection) Trusted() bool {
	return p.Confidence > MinTrustedConfidence
}

// Status is a judgement label for a stock or portfolio.
type Status string

const (
	StatusHitTarget         Status = "hit_target"
	StatusPartialSuccess    Status = "partial_success"
	StatusMissedTarget      Status = "missed_target"
	StatusOnTrack           Status = "on_track"
	StatusBelowTarget       Status = "below_target"
	StatusDeclining         Status = "declining"
	StatusEarlyDaysPositive Status = "early_days_positive"
	StatusEarlyDaysNegative Status = "early_days_negative"
	StatusPending           Status = "pending"
)

// Judgement is a status label with the numeric value it was derived from
// (realized performance or projected performance, in percent).
type Judgement struct {
	Status Status  `json:"status"`
	Value  float64 `json:"value"`
}

// StockResult is the full per-stock output of a validation run.
type StockResult struct {
	Stock          string      `json:"stock"`
	Score          float64     `json:"score"`
	ScoreDate      time.Time   `json:"score_date"`
	BuyPrice       float64     `json:"buy_price"`
	BuyDate        time.Time   `json:"buy_date"`
	TargetPrice    float64     `json:"target_price"` // split-adjusted
	TargetPercent  float64     `json:"target_percent"`
	CurrentPrice   float64     `json:"current_price"`
	CurrentDate    time.Time   `json:"current_date"`
	Performance    float64     `json:"performance"`
	HurdleProgress float64     `json:"hurdle_progress"`
	Annualized     float64     `json:"annualized"`
	DaysElapsed    int         `json:"days_elapsed"` // capped at WindowDays
	DividendTotal  float64     `json:"dividend_total"`
	DividendCount  int         `json:"dividend_count"`
	Trend          *TrendLine  `json:"trend,omitempty"`
	Projection     *Projection `json:"projection,omitempty"`
	Judgement      Judgement   `json:"judgement"`
}

// PortfolioResult aggregates a full score file.
type PortfolioResult struct {
	ScoreDate      time.Time     `json:"score_date"`
	TotalStocks    int           `json:"total_stocks"`
	StocksWithData int           `json:"stocks_with_data"`
	TargetPercent  float64       `json:"target_percent"`
	Performance    float64       `json:"performance"`
	Annualized     float64       `json:"annualized"`
	DaysElapsed    int           `json:"days_elapsed"` // capped at WindowDays
	Trend          *TrendLine    `json:"trend,omitempty"`
	Projection     *Projection   `json:"projection,omitempty"`
	Judgement      Judgement     `json:"judgement"`
	Stocks         []StockResult `json:"stocks"`
	Excluded       []string      `json:"excluded,omitempty"`
}

// StockData bundles the immutable inputs for a single stock.
type StockData struct {
	Record    domain.ScoreRecord
	Bars      []domain.PriceBar
	Dividends []domain.DividendEvent
}
