package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/99minutos/admin-auth/internal/pkg/config"
	"github.com/99minutos/admin-auth/pkg/logger"
)

const serviceName = "admin-auth"

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	return newRootCmd(version, commit, date).Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adminauth",
		Short: "Administrator authentication service",
		Long: `adminauth serves admin registration, login and profile endpoints behind a
bearer-token gate, backed by MongoDB.

Configuration is read from the environment (and an optional .env file).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newAdminCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))

	return cmd
}

// bootstrap loads configuration and initialises the process logger, which
// callers then obtain through logger.Get.
func bootstrap(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: serviceName,
	})
	return cfg, nil
}
