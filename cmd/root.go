package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "services-billing",
	Short: "Services billing microservice",
	Long:  "Catalog of services and plans, client subscriptions and the price recomputation pipeline.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
