package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/daily-trivia/internal/api"
	"github.com/yourusername/daily-trivia/internal/resolver"
)

const (
	defaultGracefulTimeout = 30 * time.Second
	serverReadTimeout      = 10 * time.Second
	serverWriteTimeout     = 15 * time.Second
	serverIdleTimeout      = 60 * time.Second
)

func newServeCmd() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the trivia API server",
		Long: `Start the HTTP server that returns today's trivia for each domain.

The server reads per-day JSON files from the data root; it never writes them.
Run "trivia generate" beforehand to populate the data directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if address != "" {
				cfg.Server.Address = address
			}

			logger := slog.Default()
			res := resolver.NewWithLogger(cfg.DataRoot, logger)
			router := api.NewServer(res, logger)

			server := &http.Server{
				Addr:         cfg.Server.Address,
				Handler:      router,
				ReadTimeout:  serverReadTimeout,
				WriteTimeout: serverWriteTimeout,
				IdleTimeout:  serverIdleTimeout,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Server listening",
					"address", cfg.Server.Address,
					"data_root", cfg.DataRoot)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			// Wait for interrupt signal to gracefully shutdown the server
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-quit:
			}
			logger.Info("Shutting down server")

			shutdownCtx, cancel := context.WithTimeout(cmd.Context(), defaultGracefulTimeout)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Error("Server forced to shutdown", "error", err)
				return err
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Listen address (overrides config)")
	return cmd
}
