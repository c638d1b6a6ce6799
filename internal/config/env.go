package config

import (
	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use an underscore delimiter (e.g., IMPORT_STRICT).
type EnvConfig struct {
	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.yamdb
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/yamdb.db
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// Import configures bulk import runs.
	Import ImportEnv `envconfig:"IMPORT"`

	// StatsLimit is the number of rated titles listed by stats.
	// Env: STATS_LIMIT (default: 10)
	StatsLimit int `envconfig:"STATS_LIMIT" default:"10"`
}

// ImportEnv holds environment configuration for import runs.
type ImportEnv struct {
	// Dir is the directory scanned for CSV files.
	// Env: IMPORT_DIR (default: current directory)
	Dir string `envconfig:"DIR"`

	// Strict fails the run when any row is skipped.
	// Env: IMPORT_STRICT (default: false)
	Strict bool `envconfig:"STRICT" default:"false"`

	// DryRun rolls back everything the run wrote.
	// Env: IMPORT_DRY_RUN (default: false)
	DryRun bool `envconfig:"DRY_RUN" default:"false"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "YAMDB" would require YAMDB_DB_URL instead of DB_URL.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.DataDir != "" {
		cfg = applyOption(cfg, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		cfg = applyOption(cfg, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	if e.LogFormat != "" {
		cfg = applyOption(cfg, WithLogFormat(ParseLogFormat(e.LogFormat)))
	}

	cfg = applyOption(cfg, WithImportConfig(e.Import.ToImportConfig()))

	if e.StatsLimit > 0 {
		cfg = applyOption(cfg, WithStatsLimit(e.StatsLimit))
	}

	return cfg
}

// ToImportConfig converts ImportEnv to ImportConfig.
func (i ImportEnv) ToImportConfig() ImportConfig {
	return NewImportConfig().
		WithDir(i.Dir).
		WithStrict(i.Strict).
		WithDryRun(i.DryRun)
}

func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}
