// Package config defines service configuration and its layered loading:
// defaults, then an optional YAML file, then SWING_-prefixed environment
// variables. Every pipeline stage receives its settings from here explicitly;
// nothing reads ambient globals, so independent states or year pairs can run
// concurrently with different configurations.
package config

import (
	"math"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/electionlab/swing-score-etl/internal/domain"
)

// weightSumTolerance bounds how far the component weights may drift from 1.0
// before configuration is rejected. Scores are only guaranteed to land in
// [0,1] when weights sum to 1.0.
const weightSumTolerance = 1e-9

// Config holds all service settings.
type Config struct {
	LogLevel  string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"oneof=json text"`

	HTTPAddr        string        `koanf:"http_addr" validate:"required"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	// RawDataDir holds the per-state raw election CSVs; ScoresPath is the
	// JSON document the score command writes and the serve command reads.
	RawDataDir string `koanf:"raw_data_dir" validate:"required"`
	ScoresPath string `koanf:"scores_path" validate:"required"`

	// States lists the two-letter state codes to process.
	States []string `koanf:"states" validate:"min=1,dive,len=2"`

	// YearPrev and YearLatest pick the two elections to compare.
	YearPrev   int `koanf:"year_prev" validate:"required"`
	YearLatest int `koanf:"year_latest" validate:"required,gtfield=YearPrev"`

	Columns     domain.ColumnMapping `koanf:"columns"`
	PartyLabels PartyLabels          `koanf:"party_labels"`
	Weights     domain.Weights       `koanf:"weights" validate:"required"`
	Tiers       []domain.TierBand    `koanf:"tiers" validate:"min=1"`

	Kafka KafkaConfig `koanf:"kafka"`
}

// PartyLabels configures the synonym lists used to standardize free-text
// party labels. Precedence is fixed (DEM before REP); only the synonyms are
// configurable.
type PartyLabels struct {
	Dem []string `koanf:"dem" validate:"min=1"`
	Rep []string `koanf:"rep" validate:"min=1"`
}

// KafkaConfig controls the optional scored-county sink topic.
type KafkaConfig struct {
	Enabled bool     `koanf:"enabled"`
	Brokers []string `koanf:"brokers" validate:"required_if=Enabled true"`
	Topic   string   `koanf:"topic" validate:"required_if=Enabled true"`
}

// Default returns the configuration used when no file or env overrides are
// present. Column names and party labels follow the MIT Election Lab layout.
func Default() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "json",
		HTTPAddr:        ":8080",
		ShutdownTimeout: 10 * time.Second,
		RawDataDir:      "data/raw",
		ScoresPath:      "data/processed/swing_scores.json",
		States:          []string{"AZ", "GA", "MI", "NC", "NV", "PA", "WI"},
		YearPrev:        2016,
		YearLatest:      2020,
		Columns:         domain.DefaultColumnMapping(),
		PartyLabels: PartyLabels{
			Dem: []string{"DEMOCRAT", "DEM", "DEMOCRATIC"},
			Rep: []string{"REPUBLICAN", "REP"},
		},
		Weights: domain.DefaultWeights(),
		Tiers:   domain.DefaultTierBands(),
		Kafka: KafkaConfig{
			Enabled: false,
			Brokers: []string{"localhost:9092"},
			Topic:   "scored-counties",
		},
	}
}

// PartyMatcher builds the domain matcher from the configured synonym lists.
func (c *Config) PartyMatcher() *domain.PartyMatcher {
	return domain.NewPartyMatcher(c.PartyLabels.Dem, c.PartyLabels.Rep)
}

// newValidator builds the validator with the Config struct-level rules
// registered.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateConfigStruct, Config{})
	return v
}

// validateConfigStruct enforces cross-field rules the tag syntax cannot
// express: weights must sum to 1.0 and the tier bands must be ordered highest
// first, contiguous, and cover [0,1].
func validateConfigStruct(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)

	if math.Abs(cfg.Weights.Sum()-1.0) > weightSumTolerance {
		sl.ReportError(cfg.Weights, "Weights", "weights", "weightsum", "")
	}
	for _, w := range []float64{cfg.Weights.MarginChange, cfg.Weights.Closeness, cfg.Weights.Turnout, cfg.Weights.Votes} {
		if w < 0 {
			sl.ReportError(cfg.Weights, "Weights", "weights", "weightnonnegative", "")
			break
		}
	}

	if len(cfg.Tiers) == 0 {
		return
	}
	if cfg.Tiers[0].Max != 1.0 || cfg.Tiers[len(cfg.Tiers)-1].Min != 0.0 {
		sl.ReportError(cfg.Tiers, "Tiers", "tiers", "tiercoverage", "")
	}
	for i, b := range cfg.Tiers {
		if b.Min >= b.Max {
			sl.ReportError(cfg.Tiers, "Tiers", "tiers", "tierordering", "")
			return
		}
		if i > 0 && cfg.Tiers[i-1].Min != b.Max {
			sl.ReportError(cfg.Tiers, "Tiers", "tiers", "tiercontiguous", "")
			return
		}
	}
}
