package scheduler

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aristath/grq-validation/internal/runner"
)

// ValidationJob runs the recurring validation of all recent score files.
// Re-running over unchanged inputs is idempotent, so overlapping results
// from consecutive days simply overwrite each other.
type ValidationJob struct {
	runner *runner.Runner
	log    zerolog.Logger
}

// NewValidationJob creates the recurring validation job.
func NewValidationJob(r *runner.Runner, log zerolog.Logger) *ValidationJob {
	return &ValidationJob{
		runner: r,
		log:    log.With().Str("job", "validation").Logger(),
	}
}

// Name implements Job.
func (j *ValidationJob) Name() string { return "validation" }

// Run implements Job.
func (j *ValidationJob) Run() error {
	run, err := j.runner.RunAll(context.Background(), false)
	if err != nil {
		return err
	}
	j.log.Info().
		Str("run_id", run.ID).
		Int("processed", run.Processed).
		Int("errors", run.Errors).
		Msg("Scheduled validation finished")
	return nil
}
