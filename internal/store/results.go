package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/grq-validation/internal/domain"
	"github.com/aristath/grq-validation/internal/modules/validation"
)

// Run summarizes one validation run.
type Run struct {
	ID         string    `json:"id"`
	RunAt      time.Time `json:"run_at"`
	ScoreFiles int       `json:"score_files"`
	Processed  int       `json:"processed"`
	Errors     int       `json:"errors"`
}

// ResultsRepository handles persistence of validation runs and their
// per-date portfolio and stock results.
type ResultsRepository struct {
	db  *DB
	log zerolog.Logger
}

// NewResultsRepository creates a results repository.
func NewResultsRepository(db *DB, log zerolog.Logger) *ResultsRepository {
	return &ResultsRepository{
		db:  db,
		log: log.With().Str("component", "results_repository").Logger(),
	}
}

// CreateRun inserts a new run row and returns its generated id.
func (r *ResultsRepository) CreateRun(scoreFiles int) (Run, error) {
	run := Run{
		ID:         uuid.New().String(),
		RunAt:      time.Now().UTC(),
		ScoreFiles: scoreFiles,
	}
	_, err := r.db.Conn().Exec(
		`INSERT INTO validation_runs (id, run_at, score_files, processed, errors) VALUES (?, ?, ?, 0, 0)`,
		run.ID, run.RunAt, run.ScoreFiles,
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to insert run: %w", err)
	}
	return run, nil
}

// FinishRun records the processed and error counts of a completed run.
func (r *ResultsRepository) FinishRun(runID string, processed, errors int) error {
	_, err := r.db.Conn().Exec(
		`UPDATE validation_runs SET processed = ?, errors = ? WHERE id = ?`,
		processed, errors, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to update run %s: %w", runID, err)
	}
	return nil
}

// SavePortfolioResult persists a portfolio result and its stock rows.
func (r *ResultsRepository) SavePortfolioResult(runID string, result validation.PortfolioResult) error {
	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	scoreDate := domain.FormatDate(result.ScoreDate)

	var trendSlope, trendR2 sql.NullFloat64
	if result.Trend != nil {
		trendSlope = sql.NullFloat64{Float64: result.Trend.Slope, Valid: true}
		trendR2 = sql.NullFloat64{Float64: result.Trend.RSquared, Valid: true}
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO portfolio_results
		(run_id, score_date, total_stocks, stocks_with_data, target_pct, performance,
		 annualized, days_elapsed, trend_slope, trend_r2, judgement, judgement_value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, scoreDate, result.TotalStocks, result.StocksWithData,
		result.TargetPercent, result.Performance, result.Annualized, result.DaysElapsed,
		trendSlope, trendR2, string(result.Judgement.Status), result.Judgement.Value,
	)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio result for %s: %w", scoreDate, err)
	}

	for _, stock := range result.Stocks {
		var projected, confidence sql.NullFloat64
		var method sql.NullString
		if stock.Projection != nil {
			projected = sql.NullFloat64{Float64: stock.Projection.Projected90Day, Valid: true}
			confidence = sql.NullFloat64{Float64: stock.Projection.Confidence, Valid: true}
			method = sql.NullString{String: stock.Projection.Method, Valid: true}
		}

		_, err = tx.Exec(`
			INSERT OR REPLACE INTO stock_results
			(run_id, score_date, stock, score, buy_price, buy_date, target_price, target_pct,
			 current_price, performance, hurdle_progress, annualized, days_elapsed,
			 dividend_total, dividend_count, projected, projection_method,
			 projection_confidence, judgement, judgement_value)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, scoreDate, stock.Stock, stock.Score, stock.BuyPrice,
			domain.FormatDate(stock.BuyDate), stock.TargetPrice, stock.TargetPercent,
			stock.CurrentPrice, stock.Performance, stock.HurdleProgress, stock.Annualized,
			stock.DaysElapsed, stock.DividendTotal, stock.DividendCount,
			projected, method, confidence,
			string(stock.Judgement.Status), stock.Judgement.Value,
		)
		if err != nil {
			return fmt.Errorf("failed to insert stock result %s/%s: %w", scoreDate, stock.Stock, err)
		}
	}

	return tx.Commit()
}

// LatestRun returns the most recent run, or nil when none exists.
func (r *ResultsRepository) LatestRun() (*Run, error) {
	row := r.db.Conn().QueryRow(
		`SELECT id, run_at, score_files, processed, errors FROM validation_runs ORDER BY run_at DESC LIMIT 1`)

	var run Run
	err := row.Scan(&run.ID, &run.RunAt, &run.ScoreFiles, &run.Processed, &run.Errors)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	return &run, nil
}

// PortfolioSummary is a stored portfolio result row.
type PortfolioSummary struct {
	ScoreDate      string   `json:"score_date"`
	TotalStocks    int      `json:"total_stocks"`
	StocksWithData int      `json:"stocks_with_data"`
	TargetPercent  float64  `json:"target_percent"`
	Performance    float64  `json:"performance"`
	Annualized     float64  `json:"annualized"`
	DaysElapsed    int      `json:"days_elapsed"`
	TrendSlope     *float64 `json:"trend_slope,omitempty"`
	TrendRSquared  *float64 `json:"trend_r_squared,omitempty"`
	Judgement      string   `json:"judgement"`
	JudgementValue float64  `json:"judgement_value"`
}

// PortfolioResults lists the stored portfolio rows for a run, newest
// score date first.
func (r *ResultsRepository) PortfolioResults(runID string) ([]PortfolioSummary, error) {
	rows, err := r.db.Conn().Query(`
		SELECT score_date, total_stocks, stocks_with_data, target_pct, performance,
		       annualized, days_elapsed, trend_slope, trend_r2, judgement, judgement_value
		FROM portfolio_results WHERE run_id = ? ORDER BY score_date DESC`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio results: %w", err)
	}
	defer rows.Close()

	var results []PortfolioSummary
	for rows.Next() {
		var p PortfolioSummary
		var slope, r2 sql.NullFloat64
		err := rows.Scan(&p.ScoreDate, &p.TotalStocks, &p.StocksWithData, &p.TargetPercent,
			&p.Performance, &p.Annualized, &p.DaysElapsed, &slope, &r2,
			&p.Judgement, &p.JudgementValue)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio result: %w", err)
		}
		if slope.Valid {
			p.TrendSlope = &slope.Float64
		}
		if r2.Valid {
			p.TrendRSquared = &r2.Float64
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// StockSummary is a stored per-stock result row.
type StockSummary struct {
	Stock                string   `json:"stock"`
	Score                float64  `json:"score"`
	BuyPrice             float64  `json:"buy_price"`
	BuyDate              string   `json:"buy_date"`
	TargetPrice          float64  `json:"target_price"`
	TargetPercent        float64  `json:"target_percent"`
	CurrentPrice         float64  `json:"current_price"`
	Performance          float64  `json:"performance"`
	HurdleProgress       float64  `json:"hurdle_progress"`
	Annualized           float64  `json:"annualized"`
	DaysElapsed          int      `json:"days_elapsed"`
	DividendTotal        float64  `json:"dividend_total"`
	DividendCount        int      `json:"dividend_count"`
	Projected            *float64 `json:"projected,omitempty"`
	ProjectionMethod     *string  `json:"projection_method,omitempty"`
	ProjectionConfidence *float64 `json:"projection_confidence,omitempty"`
	Judgement            string   `json:"judgement"`
	JudgementValue       float64  `json:"judgement_value"`
}

// StockResults lists the stored per-stock rows for a run and score date.
func (r *ResultsRepository) StockResults(runID, scoreDate string) ([]StockSummary, error) {
	rows, err := r.db.Conn().Query(`
		SELECT stock, score, buy_price, buy_date, target_price, target_pct, current_price,
		       performance, hurdle_progress, annualized, days_elapsed, dividend_total,
		       dividend_count, projected, projection_method, projection_confidence,
		       judgement, judgement_value
		FROM stock_results WHERE run_id = ? AND score_date = ? ORDER BY stock`, runID, scoreDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock results: %w", err)
	}
	defer rows.Close()

	var results []StockSummary
	for rows.Next() {
		var s StockSummary
		var projected, confidence sql.NullFloat64
		var method sql.NullString
		err := rows.Scan(&s.Stock, &s.Score, &s.BuyPrice, &s.BuyDate, &s.TargetPrice,
			&s.TargetPercent, &s.CurrentPrice, &s.Performance, &s.HurdleProgress,
			&s.Annualized, &s.DaysElapsed, &s.DividendTotal, &s.DividendCount,
			&projected, &method, &confidence, &s.Judgement, &s.JudgementValue)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock result: %w", err)
		}
		if projected.Valid {
			s.Projected = &projected.Float64
		}
		if method.Valid {
			s.ProjectionMethod = &method.String
		}
		if confidence.Valid {
			s.ProjectionConfidence = &confidence.Float64
		}
		results = append(results, s)
	}
	return results, rows.Err()
}
