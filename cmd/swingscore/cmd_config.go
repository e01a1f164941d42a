package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/electionlab/swing-score-etl/internal/config"
	"github.com/electionlab/swing-score-etl/internal/domain"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

// newConfigInitCmd writes the default configuration as YAML, either to stdout
// or to a file, as a starting point for overrides.
func newConfigInitCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Print the default configuration as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(configDocument(config.Default()))
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "wrote", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to file instead of stdout")
	return cmd
}

// configDocument lays out a Config under the key names the loader reads back.
func configDocument(cfg *config.Config) map[string]any {
	tiers := make([]map[string]any, len(cfg.Tiers))
	for i, b := range cfg.Tiers {
		tiers[i] = map[string]any{
			"tier":        string(b.Tier),
			"min":         b.Min,
			"max":         b.Max,
			"description": b.Description,
			"icon":        b.Icon,
		}
	}
	return map[string]any{
		"log_level":        cfg.LogLevel,
		"log_format":       cfg.LogFormat,
		"http_addr":        cfg.HTTPAddr,
		"shutdown_timeout": cfg.ShutdownTimeout.String(),
		"raw_data_dir":     cfg.RawDataDir,
		"scores_path":      cfg.ScoresPath,
		"states":           cfg.States,
		"year_prev":        cfg.YearPrev,
		"year_latest":      cfg.YearLatest,
		"columns":          columnsDocument(cfg.Columns),
		"party_labels": map[string]any{
			"dem": cfg.PartyLabels.Dem,
			"rep": cfg.PartyLabels.Rep,
		},
		"weights": map[string]any{
			"margin_change": cfg.Weights.MarginChange,
			"closeness":     cfg.Weights.Closeness,
			"turnout":       cfg.Weights.Turnout,
			"votes":         cfg.Weights.Votes,
		},
		"tiers": tiers,
		"kafka": map[string]any{
			"enabled": cfg.Kafka.Enabled,
			"brokers": cfg.Kafka.Brokers,
			"topic":   cfg.Kafka.Topic,
		},
	}
}

func columnsDocument(cols domain.ColumnMapping) map[string]any {
	return map[string]any{
		"state":       cols.State,
		"county_name": cols.CountyName,
		"county_fips": cols.CountyFIPS,
		"year":        cols.Year,
		"party":       cols.Party,
		"votes":       cols.Votes,
	}
}
