package cmd

import (
	"github.com/spf13/cobra"
)

var version = "dev" // set at build time with -ldflags "-X .../cmd.version=..."

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dashboardd",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("dashboardd %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
