package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aristath/grq-validation/internal/scheduler"
	"github.com/aristath/grq-validation/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API with the scheduled daily validation",
	Long: `Starts the HTTP API server and the background scheduler.

The scheduler runs a validation pass on the configured cron schedule
(VALIDATION_SCHEDULE, default 6 PM on weekdays). The API serves stored
results and can trigger ad-hoc runs.

Endpoints:
  GET  /api/health
  GET  /api/validations
  GET  /api/validations/{date}
  POST /api/validations/run`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "HTTP port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	if servePort != 0 {
		a.cfg.Port = servePort
	}

	a.log.Info().Msg("Starting GRQ validation service")

	sched := scheduler.New(a.log)
	job := scheduler.NewValidationJob(a.runner, a.log)
	if err := sched.AddJob(a.cfg.ValidationSchedule, job); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Port:    a.cfg.Port,
		Log:     a.log,
		Repo:    a.repo,
		Runner:  a.runner,
		DevMode: a.cfg.DevMode,
	})

	go func() {
		if err := srv.Start(); err != nil {
			a.log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	a.log.Info().Int("port", a.cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("Server forced to shutdown")
	}

	a.log.Info().Msg("Server stopped")
	return nil
}
