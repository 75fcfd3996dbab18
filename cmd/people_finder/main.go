// Package main provides the people_finder CLI: search, profile lookups and the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/people-finder/internal/config"
	"github.com/jonathan/people-finder/internal/logger"
	"github.com/spf13/cobra"
)

// app carries the configuration resolved before any subcommand runs.
type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "people_finder",
		Short:         "Search people and organizations on the identity API",
		Long:          "people_finder searches people and organizations through the streaming identity API, shows profiles and serves the same features over HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logger.Init(cfg.LoggerOptions())
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a JSON config file")

	rootCmd.AddCommand(newSearchCmd(a), newProfileCmd(a), newServeCmd(a))
	return rootCmd
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
