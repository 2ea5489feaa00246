package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aristath/grq-validation/internal/domain"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run validation over published score files",
	Long: `Runs a validation pass over published score files.

By default only score files inside the recency window are processed;
windows that have already closed cannot change. Use --all to reprocess
every file in the index, or --date to validate a single score date.

Examples:
  grq validate
  grq validate --all
  grq validate --date 2025-06-16`,
	RunE: runValidate,
}

var (
	validateAll  bool
	validateDate string
)

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateAll, "all", false, "process every score file, not just recent ones")
	validateCmd.Flags().StringVar(&validateDate, "date", "", "validate a single score date (YYYY-MM-DD)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if validateDate != "" {
		date, err := domain.ParseDate(validateDate)
		if err != nil {
			return fmt.Errorf("invalid --date: %w", err)
		}

		result, err := a.runner.RunDate(ctx, date)
		if err != nil {
			return err
		}

		a.log.Info().
			Str("date", validateDate).
			Int("stocks", result.TotalStocks).
			Int("with_data", result.StocksWithData).
			Float64("performance", result.Performance).
			Str("judgement", string(result.Judgement.Status)).
			Msg("Validation finished")
		return nil
	}

	run, err := a.runner.RunAll(ctx, validateAll)
	if err != nil {
		return err
	}

	a.log.Info().
		Str("run_id", run.ID).
		Int("processed", run.Processed).
		Int("errors", run.Errors).
		Msg("Validation run finished")

	if run.Errors > 0 {
		return fmt.Errorf("%d of %d score files failed", run.Errors, run.ScoreFiles)
	}
	return nil
}
