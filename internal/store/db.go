// Package store persists validation results to SQLite so the HTTP
// surface can serve the latest run without recomputing. The input record
// sets (scores, prices, dividends) are never stored here; they stay
// file-backed and immutable.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DB wraps the results database connection
type DB struct {
	conn *sql.DB
	path string
}

// Open opens (and creates, if needed) the results database.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL mode for better concurrency between the batch writer and the
	// HTTP readers.
	conn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)

	db := &DB{conn: conn, path: dbPath}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying sql.DB connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS validation_runs (
		id          TEXT PRIMARY KEY,
		run_at      TIMESTAMP NOT NULL,
		score_files INTEGER NOT NULL,
		processed   INTEGER NOT NULL,
		errors      INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS portfolio_results (
		run_id           TEXT NOT NULL REFERENCES validation_runs(id),
		score_date       TEXT NOT NULL,
		total_stocks     INTEGER NOT NULL,
		stocks_with_data INTEGER NOT NULL,
		target_pct       REAL NOT NULL,
		performance      REAL NOT NULL,
		annualized       REAL NOT NULL,
		days_elapsed     INTEGER NOT NULL,
		trend_slope      REAL,
		trend_r2         REAL,
		judgement        TEXT NOT NULL,
		judgement_value  REAL NOT NULL,
		PRIMARY KEY (run_id, score_date)
	);

	CREATE TABLE IF NOT EXISTS stock_results (
		run_id                TEXT NOT NULL REFERENCES validation_runs(id),
		score_date            TEXT NOT NULL,
		stock                 TEXT NOT NULL,
		score                 REAL NOT NULL,
		buy_price             REAL NOT NULL,
		buy_date              TEXT NOT NULL,
		target_price          REAL NOT NULL,
		target_pct            REAL NOT NULL,
		current_price         REAL NOT NULL,
		performance           REAL NOT NULL,
		hurdle_progress       REAL NOT NULL,
		annualized            REAL NOT NULL,
		days_elapsed          INTEGER NOT NULL,
		dividend_total        REAL NOT NULL,
		dividend_count        INTEGER NOT NULL,
		projected             REAL,
		projection_method     TEXT,
		projection_confidence REAL,
		judgement             TEXT NOT NULL,
		judgement_value       REAL NOT NULL,
		PRIMARY KEY (run_id, score_date, stock)
	);

	CREATE INDEX IF NOT EXISTS idx_portfolio_results_date ON portfolio_results(score_date);
	CREATE INDEX IF NOT EXISTS idx_stock_results_date ON stock_results(score_date);
	`

	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to migrate results database: %w", err)
	}
	return nil
}
