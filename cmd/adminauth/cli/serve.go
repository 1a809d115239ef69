package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/99minutos/admin-auth/internal/app"
	"github.com/99minutos/admin-auth/pkg/logger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	log := logger.Get()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close connections")
		}
	}()

	if err := a.Serve(ctx); err != nil {
		return err
	}
	log.Info().Msg("server stopped gracefully")
	return nil
}
