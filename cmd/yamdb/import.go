package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yamdb/yamdb/application/importer"
	"github.com/yamdb/yamdb/internal/config"
)

type importFlags struct {
	envFile string
	dbURL   string
	dir     string
	format  string
	dryRun  bool
	strict  bool
}

func importCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Load the catalog from a directory of CSV files",
		Long: `Load the catalog from a directory of CSV files.

The directory is searched recursively. Files are matched to entities by base
name: users, category, genre, titles, review, comments and genre_title. Rows
that cannot be stored are skipped and listed in the summary.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  DATA_DIR          Data directory (default: ~/.yamdb)
  DB_URL            Database URL (default: sqlite:///{data_dir}/yamdb.db)
  LOG_LEVEL         Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT        Log format: pretty, json (default: pretty)
  IMPORT_DIR        Directory with CSV files (default: current directory)
  IMPORT_STRICT     Fail when any row is skipped or any file is missing (default: false)
  IMPORT_DRY_RUN    Roll back all changes at the end of the run (default: false)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&flags.dbURL, "db-url", "", "Database URL (overrides DB_URL)")
	cmd.Flags().StringVar(&flags.dir, "dir", "", "Directory with CSV files (default: current directory)")
	cmd.Flags().StringVar(&flags.format, "format", "text", "Summary format: text, json, yaml")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Roll back all changes at the end of the run")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Exit non-zero when any row is skipped or any file is missing")

	return cmd
}

func runImport(cmd *cobra.Command, flags importFlags) error {
	format, err := importer.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.envFile)
	if err != nil {
		return err
	}
	cfg = applyImportOverrides(cmd, cfg, flags)

	client, logger, err := openClient(cfg, "import")
	if err != nil {
		return err
	}
	defer closeClient(client, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	imports := cfg.Import()
	report, runErr := client.Import(ctx, importer.RunParams{
		Dir:    imports.Dir(),
		DryRun: imports.DryRun(),
		Strict: imports.Strict(),
	})
	if runErr != nil && report.RunID == "" {
		return runErr
	}

	return writeImportResult(cmd.OutOrStdout(), report, format, runErr)
}

// writeImportResult prints the summary and returns runErr. The success line
// is only written for text output of a run that finished without error.
func writeImportResult(w io.Writer, report importer.Report, format importer.Format, runErr error) error {
	if runErr == nil && format == importer.FormatText {
		fmt.Fprintln(w, "Import was successful.")
	}
	if err := report.Render(w, format); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

// applyImportOverrides applies the flags the user set on top of the loaded
// configuration.
func applyImportOverrides(cmd *cobra.Command, cfg config.AppConfig, flags importFlags) config.AppConfig {
	var opts []config.AppConfigOption
	if flags.dbURL != "" {
		opts = append(opts, config.WithDBURL(flags.dbURL))
	}

	imports := cfg.Import().WithDir(flags.dir)
	if cmd.Flags().Changed("dry-run") {
		imports = imports.WithDryRun(flags.dryRun)
	}
	if cmd.Flags().Changed("strict") {
		imports = imports.WithStrict(flags.strict)
	}
	opts = append(opts, config.WithImportConfig(imports))

	return cfg.Apply(opts...)
}
