package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aristath/grq-validation/internal/config"
	"github.com/aristath/grq-validation/internal/modules/validation"
	"github.com/aristath/grq-validation/internal/runner"
	"github.com/aristath/grq-validation/internal/store"
	"github.com/aristath/grq-validation/pkg/logger"
)

var (
	// Global flags
	docsPath string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "grq",
	Short: "GRQ validation engine",
	Long: `GRQ Validation

Scores published stock picks against their 90-day price targets and a
cost-of-capital hurdle. Results are persisted to SQLite and served over
an HTTP API for the dashboard.

Examples:
  grq validate
  grq validate --all
  grq validate --date 2025-06-16
  grq serve`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&docsPath, "docs", "", "docs directory with index.json and scores/ (overrides DOCS_PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")
}

// app bundles the wired dependencies shared by the commands.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	db     *store.DB
	repo   *store.ResultsRepository
	runner *runner.Runner
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}

// bootstrap loads configuration and wires the store, validation service
// and runner. Every command goes through here so flag overrides behave
// the same everywhere.
func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if docsPath != "" {
		cfg.DocsPath = docsPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})
	logger.SetGlobalLogger(log)

	projCfg, err := validation.LoadProjectorConfig(cfg.ProjectionConfigPath)
	if err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	repo := store.NewResultsRepository(db, log)
	svc := validation.NewService(projCfg, cfg.CostOfCapital, log)
	r := runner.New(cfg.DocsPath, cfg.MaxScoreAgeDays, svc, repo, log)

	return &app{
		cfg:    cfg,
		log:    log,
		db:     db,
		repo:   repo,
		runner: r,
	}, nil
}
