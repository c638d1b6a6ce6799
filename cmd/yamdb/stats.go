package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yamdb/yamdb/application/importer"
	"github.com/yamdb/yamdb/internal/config"
)

func statsCmd() *cobra.Command {
	var (
		envFile string
		dbURL   string
		format  string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show record counts and the best rated titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := importer.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			var opts []config.AppConfigOption
			if dbURL != "" {
				opts = append(opts, config.WithDBURL(dbURL))
			}
			cfg = cfg.Apply(append(opts, config.WithStatsLimit(limit))...)

			client, logger, err := openClient(cfg, "stats")
			if err != nil {
				return err
			}
			defer closeClient(client, logger)

			stats, err := client.Stats(context.Background(), cfg.StatsLimit())
			if err != nil {
				return err
			}
			return stats.Render(cmd.OutOrStdout(), f)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&dbURL, "db-url", "", "Database URL (overrides DB_URL)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text, json, yaml")
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of rated titles to list (default: STATS_LIMIT or 10)")

	return cmd
}
