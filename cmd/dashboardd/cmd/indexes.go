package cmd

import (
	"github.com/spf13/cobra"

	"github.com/99minutos/dashboard-workspace/internal/app"
	"github.com/99minutos/dashboard-workspace/internal/pkg/config"
)

var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Create the indexes or tables of the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Context())
		if err != nil {
			return err
		}
		driver, err := app.EnsureSchema(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		cmd.Printf("%s store ready\n", driver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexesCmd)
}
