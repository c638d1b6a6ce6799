package yamdb

import (
	"log/slog"
	"time"
)

// databaseType identifies the database.
type databaseType int

const (
	databaseUnset databaseType = iota
	databaseSQLite
	databasePostgres
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	database databaseType
	dbPath   string
	dbDSN    string
	logger   *slog.Logger
	clock    func() time.Time
}

func newClientConfig() *clientConfig {
	return &clientConfig{clock: time.Now}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite stores the catalog in the SQLite file at path.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.database = databaseSQLite
		c.dbPath = path
	}
}

// WithPostgres stores the catalog in the PostgreSQL database at dsn.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.database = databasePostgres
		c.dbDSN = dsn
	}
}

// WithDatabaseURL picks the database from a connection URL as accepted by
// DB_URL: sqlite:///path or postgres://...
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		if path, ok := sqlitePath(url); ok {
			c.database = databaseSQLite
			c.dbPath = path
			return
		}
		c.database = databasePostgres
		c.dbDSN = url
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithClock sets the time source for year checks and default publication
// dates.
func WithClock(clock func() time.Time) Option {
	return func(c *clientConfig) {
		if clock != nil {
			c.clock = clock
		}
	}
}
