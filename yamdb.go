// Package yamdb loads the reviews catalog from CSV exports and answers
// summary queries over it.
//
// Basic usage:
//
//	client, err := yamdb.New(yamdb.WithSQLite("/data/yamdb.db"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	report, err := client.Import(ctx, importer.RunParams{Dir: "static/data"})
package yamdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/yamdb/yamdb/application/importer"
	"github.com/yamdb/yamdb/application/service"
	"github.com/yamdb/yamdb/infrastructure/persistence"
	"github.com/yamdb/yamdb/internal/database"
)

// Client is the main entry point for yamdb.
type Client struct {
	db       database.Database
	importer *importer.Importer
	catalog  *service.Catalog
	logger   *slog.Logger
	closed   atomic.Bool
}

// New opens the configured database, migrates the catalog schema and
// wires the import and query services.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	dbURL, err := buildDatabaseURL(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), db.Close())
	}
	if err := persistence.ValidateSchema(db); err != nil {
		return nil, errors.Join(fmt.Errorf("validate schema: %w", err), db.Close())
	}

	imp, err := importer.New(db, persistence.NewStores, logger, importer.WithClock(cfg.clock))
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}

	return &Client{
		db:       db,
		importer: imp,
		catalog:  service.NewCatalog(persistence.NewStores(db), logger),
		logger:   logger,
	}, nil
}

// Import loads the CSV files found under params.Dir. The report is
// returned even when err is non-nil.
func (c *Client) Import(ctx context.Context, params importer.RunParams) (importer.Report, error) {
	if c.closed.Load() {
		return importer.Report{}, ErrClientClosed
	}
	return c.importer.Run(ctx, params)
}

// ImportSources loads an already bound set of files.
func (c *Client) ImportSources(ctx context.Context, sources importer.Sources, params importer.RunParams) (importer.Report, error) {
	if c.closed.Load() {
		return importer.Report{}, ErrClientClosed
	}
	return c.importer.Import(ctx, sources, params)
}

// Stats returns record counts and up to limit titles ordered by rating.
func (c *Client) Stats(ctx context.Context, limit int) (service.Stats, error) {
	if c.closed.Load() {
		return service.Stats{}, ErrClientClosed
	}
	return c.catalog.Stats(ctx, limit)
}

// Close releases the database connection. A second call returns
// ErrClientClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}
	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	c.logger.Debug("yamdb client closed")
	return nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

func buildDatabaseURL(cfg *clientConfig) (string, error) {
	switch cfg.database {
	case databaseSQLite:
		return "sqlite:///" + cfg.dbPath, nil
	case databasePostgres:
		return cfg.dbDSN, nil
	default:
		return "", ErrNoDatabase
	}
}

// sqlitePath extracts the file path from a sqlite URL.
func sqlitePath(url string) (string, bool) {
	if path, ok := strings.CutPrefix(url, "sqlite:///"); ok {
		return path, true
	}
	if path, ok := strings.CutPrefix(url, "sqlite:"); ok {
		return path, true
	}
	return "", false
}
