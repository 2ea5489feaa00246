// Package domain contains the shared record types consumed by the
// validation engine: score records, daily price bars and dividend events.
// All three are immutable after load; everything else in the system is
// derived from them on demand.
package domain

import "time"

// ScoreRecord is one row of a published score file: a recommended stock
// with its 90-day target price. Optional columns that fail to parse are
// left at their zero values, never treated as fatal.
type ScoreRecord struct {
	Stock                  string     `json:"stock"`
	Score                  float64    `json:"score"`
	Target                 float64    `json:"target"`
	ExDividendDate         *time.Time `json:"ex_dividend_date,omitempty"`
	DividendPerShare       float64    `json:"dividend_per_share"`
	Notes                  string     `json:"notes,omitempty"`
	IntrinsicValueBasic    *float64   `json:"intrinsic_value_basic,omitempty"`
	IntrinsicValueAdjusted *float64   `json:"intrinsic_value_adjusted,omitempty"`
}

// PriceBar is one trading day of history for a stock. Bars are kept in
// ascending date order per stock. A split coefficient above 1.0 marks a
// split effective on that date; 1.0 means no split occurred.
type PriceBar struct {
	Date             time.Time `json:"date"`
	High             float64   `json:"high"`
	Low              float64   `json:"low"`
	Open             float64   `json:"open"`
	Close            float64   `json:"close"`
	SplitCoefficient float64   `json:"split_coefficient"`
}

// Mid returns the (high+low)/2 reference price for the bar.
func (b PriceBar) Mid() float64 {
	return (b.High + b.Low) / 2
}

// DividendEvent is a single ex-dividend payment for a stock.
type DividendEvent struct {
	ExDate time.Time `json:"date"`
	Amount float64   `json:"amount"`
}
