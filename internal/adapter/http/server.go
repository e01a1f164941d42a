// Package http exposes health endpoints and the read-only scores API.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/electionlab/swing-score-etl/internal/domain"
)

// ScoreStore is the read side of the scores document consumed by the API.
type ScoreStore interface {
	States() []string
	State(code string) ([]domain.CountySwing, bool)
	Meta() (runID string, generatedAt time.Time, yearPrev, yearLatest int)
	Ready() error
}

// Server exposes health, readiness, metrics, and the scores API.
type Server struct {
	httpServer *http.Server
	store      ScoreStore
	bands      []domain.TierBand
	logger     *slog.Logger
}

// NewServer creates an HTTP server with health and API routes. Tiers are
// recomputed from scores on every request; the stored tier field is display
// data, never authoritative.
func NewServer(addr string, store ScoreStore, bands []domain.TierBand, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		store:  store,
		bands:  bands,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/states", s.handleStates)
	mux.HandleFunc("GET /api/state/{code}", s.handleState)
	mux.HandleFunc("GET /api/state/{code}/summary", s.handleStateSummary)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if err := s.store.Ready(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type statesResponse struct {
	States      []string  `json:"states"`
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	YearPrev    int       `json:"year_prev"`
	YearLatest  int       `json:"year_latest"`
}

func (s *Server) handleStates(w http.ResponseWriter, _ *http.Request) {
	runID, generatedAt, yearPrev, yearLatest := s.store.Meta()
	writeJSON(w, http.StatusOK, statesResponse{
		States:      s.store.States(),
		RunID:       runID,
		GeneratedAt: generatedAt,
		YearPrev:    yearPrev,
		YearLatest:  yearLatest,
	})
}

type stateResponse struct {
	StateCode string               `json:"state_code"`
	Count     int                  `json:"count"`
	Counties  []domain.CountySwing `json:"counties"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.PathValue("code"))

	counties, ok := s.store.State(code)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no data for state: " + code})
		return
	}

	counties = domain.AddTiers(counties, s.bands)

	if filter := r.URL.Query().Get("tier"); filter != "" {
		tier, ok := s.parseTier(filter)
		if !ok {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown tier: " + filter})
			return
		}
		filtered := counties[:0:0]
		for _, c := range counties {
			if c.Tier == tier {
				filtered = append(filtered, c)
			}
		}
		counties = filtered
	}

	writeJSON(w, http.StatusOK, stateResponse{
		StateCode: code,
		Count:     len(counties),
		Counties:  counties,
	})
}

type summaryResponse struct {
	StateCode string               `json:"state_code"`
	Total     int                  `json:"total"`
	Summary   []domain.TierSummary `json:"summary"`
}

func (s *Server) handleStateSummary(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.PathValue("code"))

	counties, ok := s.store.State(code)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no data for state: " + code})
		return
	}

	tiered := domain.AddTiers(counties, s.bands)
	writeJSON(w, http.StatusOK, summaryResponse{
		StateCode: code,
		Total:     len(tiered),
		Summary:   domain.SummarizeTiers(tiered, s.bands),
	})
}

// parseTier validates a tier query value against the configured bands.
func (s *Server) parseTier(raw string) (domain.Tier, bool) {
	tier := domain.Tier(strings.ToUpper(raw))
	for _, b := range s.bands {
		if b.Tier == tier {
			return tier, true
		}
	}
	return "", false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
