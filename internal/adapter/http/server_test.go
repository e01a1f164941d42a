package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electionlab/swing-score-etl/internal/domain"
)

type stubStore struct {
	states   map[string][]domain.CountySwing
	readyErr error
}

func (s *stubStore) States() []string {
	codes := make([]string, 0, len(s.states))
	for code := range s.states {
		codes = append(codes, code)
	}
	return codes
}

func (s *stubStore) State(code string) ([]domain.CountySwing, bool) {
	counties, ok := s.states[code]
	return counties, ok
}

func (s *stubStore) Meta() (string, time.Time, int, int) {
	return "run-1", time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), 2016, 2020
}

func (s *stubStore) Ready() error { return s.readyErr }

func newTestServer(store ScoreStore) *Server {
	return NewServer(":0", store, domain.DefaultTierBands(), slog.Default())
}

func TestHealthEndpoints(t *testing.T) {
	t.Run("healthz", func(t *testing.T) {
		srv := newTestServer(&stubStore{})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

		assert.Equal(t, 200, rec.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	})

	t.Run("ready", func(t *testing.T) {
		srv := newTestServer(&stubStore{})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))

		assert.Equal(t, 200, rec.Code)
	})

	t.Run("not ready", func(t *testing.T) {
		srv := newTestServer(&stubStore{readyErr: errors.New("document not loaded")})
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))

		assert.Equal(t, 503, rec.Code)
		assert.Contains(t, rec.Body.String(), "document not loaded")
	})
}

func TestStatesEndpoint(t *testing.T) {
	srv := newTestServer(&stubStore{states: map[string][]domain.CountySwing{
		"PA": {},
	}})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/states", nil))

	require.Equal(t, 200, rec.Code)

	var resp statesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"PA"}, resp.States)
	assert.Equal(t, "run-1", resp.RunID)
	assert.Equal(t, 2016, resp.YearPrev)
	assert.Equal(t, 2020, resp.YearLatest)
}

func TestStateEndpoint(t *testing.T) {
	store := &stubStore{states: map[string][]domain.CountySwing{
		"PA": {
			{CountyName: "Adams", CountyFIPS: "42001", SwingScore: 0.76},
			{CountyName: "York", CountyFIPS: "42133", SwingScore: 0.45},
			{CountyName: "Juniata", CountyFIPS: "42067", SwingScore: 0.05},
		},
	}}
	srv := newTestServer(store)

	t.Run("returns tiered counties", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/state/pa", nil))

		require.Equal(t, 200, rec.Code)

		var resp stateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "PA", resp.StateCode)
		assert.Equal(t, 3, resp.Count)
		assert.Equal(t, domain.TierS, resp.Counties[0].Tier)
		assert.Equal(t, domain.TierB, resp.Counties[1].Tier)
		assert.Equal(t, domain.TierD, resp.Counties[2].Tier)
	})

	t.Run("tier filter", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/state/PA?tier=s", nil))

		require.Equal(t, 200, rec.Code)

		var resp stateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Count)
		assert.Equal(t, "Adams", resp.Counties[0].CountyName)
	})

	t.Run("unknown tier", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/state/PA?tier=Z", nil))

		assert.Equal(t, 400, rec.Code)
		assert.Contains(t, rec.Body.String(), "unknown tier")
	})

	t.Run("unknown state", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/state/TX", nil))

		assert.Equal(t, 404, rec.Code)
		assert.Contains(t, rec.Body.String(), "no data for state: TX")
	})
}

func TestStateSummaryEndpoint(t *testing.T) {
	store := &stubStore{states: map[string][]domain.CountySwing{
		"GA": {
			{CountyName: "Fulton", SwingScore: 0.80},
			{CountyName: "Cobb", SwingScore: 0.30},
			{CountyName: "Echols", SwingScore: 0.30},
			{CountyName: "Glascock", SwingScore: 0.05},
		},
	}}
	srv := newTestServer(store)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest("GET", "/api/state/GA/summary", nil))

	require.Equal(t, 200, rec.Code)

	var resp summaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "GA", resp.StateCode)
	assert.Equal(t, 4, resp.Total)
	require.Len(t, resp.Summary, 3)
	assert.Equal(t, domain.TierS, resp.Summary[0].Tier)
	assert.Equal(t, 1, resp.Summary[0].Count)
	assert.InDelta(t, 25.0, resp.Summary[0].Percentage, 1e-9)
	assert.Equal(t, domain.TierC, resp.Summary[1].Tier)
	assert.Equal(t, 2, resp.Summary[1].Count)
	assert.Equal(t, domain.TierD, resp.Summary[2].Tier)
}
