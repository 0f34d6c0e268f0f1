// Command api serves guild message and membership analytics over HTTP.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "guild-analytics",
	Short:        "Guild analytics service",
	Long:         "Pages guild message and member streams out of postgres and serves per-user, per-channel, phrase and time-series views.",
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("ANALYTICS_CONFIG"), "path to the YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(migrateCmd)
}

// @title Guild Analytics API
// @version 1.0
// @description Per-guild message, channel, phrase and membership analytics.
// @host localhost:8080
// @BasePath /
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
