// Command swingscore runs the county swing-score pipeline: the score
// subcommand executes one batch over the configured states and the serve
// subcommand exposes the resulting scores document over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/electionlab/swing-score-etl/internal/config"
	"github.com/electionlab/swing-score-etl/internal/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "swingscore",
		Short:         "County election swing-score pipeline",
		Long:          "Aggregates raw county vote returns, scores counties by swing potential across two election years, and serves the results.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file (defaults to $SWING_CONFIG)")

	root.AddCommand(
		newScoreCmd(&configPath),
		newServeCmd(&configPath),
		newConfigCmd(),
	)
	return root
}

// loadConfig resolves configuration and builds the logger, shared by the
// score and serve subcommands.
func loadConfig(path string) (*config.Config, *observability.Metrics, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, observability.NewMetrics(), nil
}
