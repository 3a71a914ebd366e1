package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dashboardd",
	Short: "Dashboard workspace server",
	Long: `dashboardd serves the dashboard shortcut API, the workspace shell and
the live sidebar socket.

Configuration is read from the environment and from a .env file in the
working directory, if present.`,
	SilenceUsage: true,
}

// Execute runs the root command until SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
