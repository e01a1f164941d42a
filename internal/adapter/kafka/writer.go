// Package kafka publishes completed scoring results to a Kafka topic for
// downstream consumers (dashboards, warehouses). The sink is optional and
// feature-flagged; the JSON store remains the system of record.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/electionlab/swing-score-etl/internal/config"
	"github.com/electionlab/swing-score-etl/internal/domain"
)

// Writer produces scored-county messages to a Kafka topic.
// It implements pipeline.ResultSink.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg config.KafkaConfig, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// WriteState serializes and publishes one state's scored counties in a
// single WriteMessages call for efficiency.
func (w *Writer) WriteState(ctx context.Context, res domain.StateResult) error {
	if len(res.Counties) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(res.Counties))
	for i := range res.Counties {
		msg, err := serializeToMessage(res, res.Counties[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish scored counties for %s: %w", res.StateCode, err)
	}
	w.logger.Info("published scored counties", "state", res.StateCode, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals one scored county into a Kafka message keyed
// by state and FIPS so per-county updates land on a stable partition.
func serializeToMessage(res domain.StateResult, county domain.CountySwing) (kafkago.Message, error) {
	data, err := json.Marshal(county)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize scored county: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(county.StateCode + ":" + county.CountyFIPS),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "state_code", Value: []byte(res.StateCode)},
			{Key: "run_id", Value: []byte(res.RunID)},
			{Key: "generated_at", Value: []byte(res.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
