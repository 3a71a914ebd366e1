package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/99minutos/dashboard-workspace/internal/app"
	"github.com/99minutos/dashboard-workspace/internal/pkg/config"
	"github.com/99minutos/dashboard-workspace/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load(ctx)
		if err != nil {
			return err
		}
		log := logger.Init(logger.OptionsFor(cfg.Env, cfg.LogLevel))
		log.Info().
			Str("version", version).
			Str("env", cfg.Env).
			Str("store", cfg.StoreDriver).
			Msg("starting dashboardd")

		a, err := app.New(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("failed to start: %w", err)
		}
		return a.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
