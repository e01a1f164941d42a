// Package pipeline orchestrates the per-state scoring batch: load raw rows,
// aggregate to county-year, score across the configured year pair, classify
// tiers, and hand the result to each sink.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/electionlab/swing-score-etl/internal/domain"
	"github.com/electionlab/swing-score-etl/internal/observability"
)

// RawSource loads every raw vote row for one state.
type RawSource interface {
	LoadState(ctx context.Context, stateCode string) ([]domain.Row, error)
}

// ResultSink receives one state's completed scoring result.
type ResultSink interface {
	WriteState(ctx context.Context, res domain.StateResult) error
}

// Params carries the configured knobs the pipeline stages need. Everything
// is passed explicitly so independent runs (different states, different year
// pairs) share no mutable state.
type Params struct {
	Columns    domain.ColumnMapping
	Parties    *domain.PartyMatcher
	Weights    domain.Weights
	Tiers      []domain.TierBand
	YearPrev   int
	YearLatest int
}

// Pipeline runs the scoring batch over a set of states.
type Pipeline struct {
	source  RawSource
	sinks   []ResultSink
	params  Params
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Pipeline with the given source, sinks, and parameters.
func New(source RawSource, sinks []ResultSink, params Params, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:  source,
		sinks:   sinks,
		params:  params,
		logger:  logger,
		metrics: metrics,
	}
}

// Run scores every requested state. Per-state failures are logged and
// counted but do not abort the remaining states; Run returns an error only
// when the context is cancelled or every state failed.
func (p *Pipeline) Run(ctx context.Context, states []string) error {
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)
	logger.Info("scoring run started",
		"states", len(states),
		"year_prev", p.params.YearPrev,
		"year_latest", p.params.YearLatest,
	)

	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	var succeeded int
	for _, state := range states {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		res, err := p.ScoreState(ctx, state, runID)
		if err != nil {
			logger.Error("state scoring failed", "state", state, "error", err)
			p.metrics.StateFailures.Inc()
			continue
		}
		p.metrics.StateProcessingDuration.Observe(time.Since(start).Seconds())

		if err := p.writeResult(ctx, res); err != nil {
			logger.Error("state result write failed", "state", state, "error", err)
			p.metrics.StateFailures.Inc()
			continue
		}

		p.metrics.StatesProcessed.Inc()
		succeeded++
		logger.Info("state scored", "state", state, "counties", len(res.Counties))
	}

	if succeeded == 0 && len(states) > 0 {
		return errors.New("all states failed to score")
	}
	logger.Info("scoring run finished", "succeeded", succeeded, "failed", len(states)-succeeded)
	return nil
}

// ScoreState runs the full aggregate-score-classify pipeline for one state.
func (p *Pipeline) ScoreState(ctx context.Context, stateCode, runID string) (domain.StateResult, error) {
	rows, err := p.source.LoadState(ctx, stateCode)
	if err != nil {
		return domain.StateResult{}, fmt.Errorf("load %s: %w", stateCode, err)
	}
	p.metrics.RowsConsumed.Add(float64(len(rows)))

	table, err := domain.Aggregate(rows, p.params.Columns, p.params.Parties)
	if err != nil {
		return domain.StateResult{}, fmt.Errorf("aggregate %s: %w", stateCode, err)
	}
	p.metrics.CountiesAggregated.Add(float64(len(table)))
	p.logger.Debug("aggregated county-year records", "state", stateCode, "count", len(table))

	scored, err := domain.Score(table, p.params.YearPrev, p.params.YearLatest, p.params.Weights)
	if err != nil {
		return domain.StateResult{}, fmt.Errorf("score %s: %w", stateCode, err)
	}
	p.metrics.CountiesScored.Add(float64(len(scored)))

	for _, c := range scored {
		p.metrics.SwingScoreDistribution.Observe(c.SwingScore)
		if domain.OutOfRange(c.SwingScore) {
			// Classification still succeeds (lowest-tier fallback), but an
			// out-of-range score means the weights were wrong somewhere.
			p.logger.Warn("swing score outside [0,1]",
				"state", stateCode,
				"county", c.CountyName,
				"score", c.SwingScore,
			)
			p.metrics.OutOfRangeScores.Inc()
		}
	}

	tiered := domain.AddTiers(scored, p.params.Tiers)
	for _, c := range tiered {
		p.metrics.TierAssignments.WithLabelValues(string(c.Tier)).Inc()
	}

	return domain.StateResult{
		StateCode:   stateCode,
		RunID:       runID,
		GeneratedAt: domain.Now(),
		YearPrev:    p.params.YearPrev,
		YearLatest:  p.params.YearLatest,
		Counties:    tiered,
		Summary:     domain.SummarizeTiers(tiered, p.params.Tiers),
	}, nil
}

// writeResult fans the result out to every sink; the first failure wins.
func (p *Pipeline) writeResult(ctx context.Context, res domain.StateResult) error {
	for _, sink := range p.sinks {
		if err := sink.WriteState(ctx, res); err != nil {
			return err
		}
	}
	return nil
}
