package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/electionlab/swing-score-etl/internal/adapter/csvdir"
	"github.com/electionlab/swing-score-etl/internal/adapter/jsonstore"
	kafkaadapter "github.com/electionlab/swing-score-etl/internal/adapter/kafka"
	"github.com/electionlab/swing-score-etl/internal/pipeline"
)

func newScoreCmd(configPath *string) *cobra.Command {
	var states []string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Run one scoring batch over the configured states",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, metrics, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			if len(states) == 0 {
				states = cfg.States
			}

			source := csvdir.NewSource(cfg.RawDataDir, cfg.Columns.State, logger)

			store := jsonstore.NewStore(cfg.ScoresPath, logger)
			// Load the existing document so states outside this run survive.
			if err := store.Load(); err != nil {
				return err
			}

			sinks := []pipeline.ResultSink{store}
			if cfg.Kafka.Enabled {
				writer := kafkaadapter.NewWriter(cfg.Kafka, logger)
				defer func() {
					if err := writer.Close(); err != nil {
						logger.Error("kafka writer close error", "error", err)
					}
				}()
				sinks = append(sinks, writer)
				logger.Info("kafka sink enabled", "topic", cfg.Kafka.Topic)
			}

			p := pipeline.New(source, sinks, pipeline.Params{
				Columns:    cfg.Columns,
				Parties:    cfg.PartyMatcher(),
				Weights:    cfg.Weights,
				Tiers:      cfg.Tiers,
				YearPrev:   cfg.YearPrev,
				YearLatest: cfg.YearLatest,
			}, logger, metrics)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return p.Run(ctx, states)
		},
	}
	cmd.Flags().StringSliceVar(&states, "states", nil, "state codes to score (default: configured states)")
	return cmd
}
