// Package api serves the persisted simulation results: the dashboard page
// for the latest run plus JSON endpoints for the raw series.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/aggregate"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/metrics"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/params"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/report"
	"github.com/DD33KKY/Simulacion-de-Salinizadorr/internal/store"
)

type Server struct {
	store *store.Store
	addr  string
}

func NewServer(st *store.Store, addr string) *Server {
	s := &Server{store: st, addr: addr}
	s.publishLatest()
	return s
}

// publishLatest pushes the most recent persisted run's headline figures to
// the last-run gauges, so /metrics reflects the database rather than only
// runs made by this process.
func (s *Server) publishLatest() {
	run, err := s.store.LatestRun()
	if err != nil {
		log.Printf("metrics: load latest run: %v", err)
		return
	}
	if run == nil {
		return
	}
	metrics.RecordRun(run.TotalProduction, run.MeanGOR, run.MeanRadiation)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/datos_simulacion.js", s.handleDataJS)
	mux.HandleFunc("/api/run", s.handleAPIRun)
	mux.HandleFunc("/api/daily", s.handleAPIDaily)
	mux.HandleFunc("/api/monthly", s.handleAPIMonthly)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("Serving simulation results on %s", s.addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// latestReport loads the most recent run and rebuilds the report view from
// the persisted daily series.
func (s *Server) latestReport() (*report.Data, error) {
	run, err := s.store.LatestRun()
	if err != nil {
		return nil, fmt.Errorf("load latest run: %w", err)
	}
	if run == nil {
		return nil, nil
	}

	var cfg params.Config
	if err := json.Unmarshal([]byte(run.ParamsJSON), &cfg); err != nil {
		return nil, fmt.Errorf("decode run %d params: %w", run.ID, err)
	}
	p, err := params.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("rebuild run %d params: %w", run.ID, err)
	}

	days, err := s.store.RunDays(run.ID)
	if err != nil {
		return nil, fmt.Errorf("load run %d days: %w", run.ID, err)
	}

	summary := aggregate.Summarize(p, days)
	return report.NewData(p, run.Year, days, summary), nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data, err := s.latestReport()
	if err != nil {
		log.Printf("Error building report: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.Error(w, "No simulation runs recorded yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.WriteHTML(w, data); err != nil {
		log.Printf("Error rendering dashboard: %v", err)
	}
}

func (s *Server) handleDataJS(w http.ResponseWriter, r *http.Request) {
	data, err := s.latestReport()
	if err != nil {
		log.Printf("Error building report data: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	if err := report.WriteJS(w, data); err != nil {
		log.Printf("Error rendering data script: %v", err)
	}
}

func (s *Server) handleAPIRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.LatestRun()
	if err != nil {
		log.Printf("Error loading latest run: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if run == nil {
		http.Error(w, "No simulation runs recorded yet", http.StatusNotFound)
		return
	}
	writeJSON(w, run)
}

func (s *Server) handleAPIDaily(w http.ResponseWriter, r *http.Request) {
	s.serveRunSeries(w, func(runID int64) (interface{}, error) {
		return s.store.RunDays(runID)
	})
}

func (s *Server) handleAPIMonthly(w http.ResponseWriter, r *http.Request) {
	s.serveRunSeries(w, func(runID int64) (interface{}, error) {
		return s.store.RunMonthly(runID)
	})
}

func (s *Server) serveRunSeries(w http.ResponseWriter, load func(int64) (interface{}, error)) {
	run, err := s.store.LatestRun()
	if err != nil {
		log.Printf("Error loading latest run: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if run == nil {
		http.Error(w, "No simulation runs recorded yet", http.StatusNotFound)
		return
	}

	series, err := load(run.ID)
	if err != nil {
		log.Printf("Error loading run %d series: %v", run.ID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, series)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
