package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// healthResponse reports process and host health for monitoring.
type healthResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:        "ok",
		UptimeSeconds: time.Since(s.started).Seconds(),
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		resp.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		resp.MemoryPercent = vm.UsedPercent
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListValidations(w http.ResponseWriter, r *http.Request) {
	run, err := s.repo.LatestRun()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	if run == nil {
		s.respondJSON(w, http.StatusOK, map[string]any{"run": nil, "portfolios": []any{}})
		return
	}

	portfolios, err := s.repo.PortfolioResults(run.ID)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"run":        run,
		"portfolios": portfolios,
	})
}

func (s *Server) handleValidationByDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	run, err := s.repo.LatestRun()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	if run == nil {
		http.NotFound(w, r)
		return
	}

	stocks, err := s.repo.StockResults(run.ID, date)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err)
		return
	}
	if len(stocks) == 0 {
		http.NotFound(w, r)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"run_id":     run.ID,
		"score_date": date,
		"stocks":     stocks,
	})
}

func (s *Server) handleTriggerRun(w http.ResponseWriter, r *http.Request) {
	includeAll := r.URL.Query().Get("all") == "true"

	// Runs can take a while over many score files; don't hold the
	// request open for them.
	go func() {
		if _, err := s.runner.RunAll(context.Background(), includeAll); err != nil {
			s.log.Error().Err(err).Msg("Triggered validation run failed")
		}
	}()

	s.respondJSON(w, http.StatusAccepted, map[string]string{"status": "started"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.log.Error().Err(err).Msg("Request failed")
	s.respondJSON(w, status, map[string]string{"error": err.Error()})
}
