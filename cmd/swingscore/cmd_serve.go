package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpadapter "github.com/electionlab/swing-score-etl/internal/adapter/http"
	"github.com/electionlab/swing-score-etl/internal/adapter/jsonstore"
	"github.com/electionlab/swing-score-etl/internal/config"
	"github.com/electionlab/swing-score-etl/internal/observability"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the scores document over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			logger := newLogger(cfg)

			store := jsonstore.NewStore(cfg.ScoresPath, logger)
			if err := store.Load(); err != nil {
				// Serve anyway; readiness reports the missing document until
				// a score run produces one.
				logger.Warn("scores document not loaded", "path", cfg.ScoresPath, "error", err)
			}

			srv := httpadapter.NewServer(cfg.HTTPAddr, store, cfg.Tiers, logger)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
				return err
			}
			logger.Info("shutdown complete")
			return nil
		},
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	return observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
}
