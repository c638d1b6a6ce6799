// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Default configuration values.
const (
	DefaultLogLevel   = "INFO"
	DefaultDBFile     = "yamdb.db"
	DefaultStatsLimit = 10
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// ImportConfig configures a bulk import run.
type ImportConfig struct {
	dir    string
	strict bool
	dryRun bool
}

// NewImportConfig creates an ImportConfig that scans the current directory.
func NewImportConfig() ImportConfig {
	return ImportConfig{dir: currentDir()}
}

// Dir returns the directory scanned for CSV sources.
func (i ImportConfig) Dir() string { return i.dir }

// Strict reports whether skipped rows or missing files fail the run.
func (i ImportConfig) Strict() bool { return i.strict }

// DryRun reports whether the run is rolled back after completion.
func (i ImportConfig) DryRun() bool { return i.dryRun }

// WithDir returns a new config scanning dir. An empty dir keeps the current value.
func (i ImportConfig) WithDir(dir string) ImportConfig {
	if dir != "" {
		i.dir = dir
	}
	return i
}

// WithStrict returns a new config with the strict flag set.
func (i ImportConfig) WithStrict(strict bool) ImportConfig {
	i.strict = strict
	return i
}

// WithDryRun returns a new config with the dry-run flag set.
func (i ImportConfig) WithDryRun(dryRun bool) ImportConfig {
	i.dryRun = dryRun
	return i
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	dataDir    string
	dbURL      string
	logLevel   string
	logFormat  LogFormat
	imports    ImportConfig
	statsLimit int
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".yamdb"
	}
	return filepath.Join(home, ".yamdb")
}

// DefaultDBURL returns the SQLite URL inside dataDir.
func DefaultDBURL(dataDir string) string {
	return "sqlite:///" + filepath.Join(dataDir, DefaultDBFile)
}

func currentDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		dataDir:    dataDir,
		dbURL:      DefaultDBURL(dataDir),
		logLevel:   DefaultLogLevel,
		logFormat:  LogFormatPretty,
		imports:    NewImportConfig(),
		statsLimit: DefaultStatsLimit,
	}
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// Import returns the import run configuration.
func (c AppConfig) Import() ImportConfig { return c.imports }

// StatsLimit returns the number of rated titles listed by stats.
func (c AppConfig) StatsLimit() int { return c.statsLimit }

// IsSQLite reports whether the configured database is SQLite.
func (c AppConfig) IsSQLite() bool {
	return strings.HasPrefix(c.dbURL, "sqlite:")
}

// EnsureDataDir creates the data directory if it doesn't exist.
// Only needed when the database lives there.
func (c AppConfig) EnsureDataDir() error {
	if !c.IsSQLite() {
		return nil
	}
	if err := os.MkdirAll(c.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		c.dataDir = dir
		// Keep the default database next to the data directory.
		if c.dbURL == "" || strings.HasSuffix(c.dbURL, DefaultDBFile) {
			c.dbURL = DefaultDBURL(dir)
		}
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithImportConfig sets the import run configuration.
func WithImportConfig(i ImportConfig) AppConfigOption {
	return func(c *AppConfig) { c.imports = i }
}

// WithStatsLimit sets the stats listing limit.
func WithStatsLimit(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.statsLimit = n
		}
	}
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
// Credentials in non-SQLite URLs are masked.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("data_dir", c.dataDir),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("log_level", c.logLevel),
		slog.String("import_dir", c.imports.Dir()),
		slog.Bool("strict", c.imports.Strict()),
		slog.Bool("dry_run", c.imports.DryRun()),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if c.IsSQLite() {
		return c.dbURL
	}
	return "postgres://***@***"
}

// ParseLogFormat parses a log format string. Unknown values fall back to pretty.
func ParseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
