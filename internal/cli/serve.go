package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"interviewanalyzer/handlers"
	"interviewanalyzer/internal/server"
)

const shutdownTimeout = 15 * time.Second

func NewServeCmd(deps *Dependencies) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = deps.Config.Addr
			}
			logger := deps.App.Logger

			// A nil *archive.Store must not reach the handlers as a non-nil interface.
			var reports handlers.ReportStore
			if deps.App.Archive != nil {
				reports = deps.App.Archive
			}

			app, err := server.NewApp(deps.Config, deps.App.Pipeline, reports, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.WithField("addr", addr).Info("Starting Interview Analyzer")
				errCh <- app.Listen(addr)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("Shutting down")
			if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, e.g. :8080)")
	return cmd
}
