// Package main is the entry point for the yamdb CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yamdb/yamdb/application/importer"
	"github.com/yamdb/yamdb/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, importer.ErrIncomplete) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "yamdb",
		Short:         "yamdb reviews catalog tools",
		Long:          `yamdb loads a reviews catalog (users, categories, genres, titles, reviews and comments) from CSV exports and reports on what is stored.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(importCmd())
	cmd.AddCommand(statsCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
