package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yamdb/yamdb"
	"github.com/yamdb/yamdb/internal/config"
	"github.com/yamdb/yamdb/internal/log"
)

// openClient prepares the data directory, installs the configured logger
// as the slog default and opens a client on the configured database.
func openClient(cfg config.AppConfig, command string) (*yamdb.Client, *slog.Logger, error) {
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, nil, err
	}

	slogger := log.Configure(cfg).Slog()

	attrs := append([]slog.Attr{
		slog.String("version", version),
		slog.String("command", command),
	}, cfg.LogAttrs()...)
	slogger.LogAttrs(context.Background(), slog.LevelDebug, "starting yamdb", attrs...)

	client, err := yamdb.New(
		yamdb.WithDatabaseURL(cfg.DBURL()),
		yamdb.WithLogger(slogger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create yamdb client: %w", err)
	}
	return client, slogger, nil
}

func closeClient(client *yamdb.Client, logger *slog.Logger) {
	if err := client.Close(); err != nil {
		logger.Error("failed to close yamdb client", slog.Any("error", err))
	}
}
