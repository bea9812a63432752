package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	configDir string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:           "holder-scan",
	Short:         "SPL token holder reports from the command line",
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "./config/", "directory containing config.bot.yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level")
	rootCmd.AddCommand(cmdReport)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
