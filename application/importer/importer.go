// Package importer loads a directory of CSV files into the catalog store.
//
// Files are bound to kinds by base name, loaded in catalog.ImportOrder and
// finished with the genre/title association. Each row is persisted in its
// own transaction; a row that cannot be imported is skipped and reported,
// and the run continues.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yamdb/yamdb/domain/catalog"
	"github.com/yamdb/yamdb/internal/database"
	"github.com/yamdb/yamdb/internal/log"
)

// StoresFactory builds the catalog stores bound to a database session.
type StoresFactory func(db database.Database) catalog.Stores

// RunParams configures one import run.
type RunParams struct {
	// Dir is the directory tree searched for CSV files.
	Dir string
	// DryRun rolls back every change when the run ends.
	DryRun bool
	// Strict makes Run return ErrIncomplete when any row was skipped,
	// any file was missing or any file failed to load.
	Strict bool
}

// Importer loads CSV sources into the catalog.
type Importer struct {
	db       database.Database
	stores   StoresFactory
	registry *Registry
	order    []catalog.Kind
	clock    func() time.Time
	logger   *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithClock sets the time source used for year checks, default publication
// dates and report timestamps.
func WithClock(clock func() time.Time) Option {
	return func(i *Importer) {
		if clock != nil {
			i.clock = clock
		}
	}
}

// WithRegistry replaces the row handlers.
func WithRegistry(registry *Registry) Option {
	return func(i *Importer) {
		if registry != nil {
			i.registry = registry
		}
	}
}

// WithOrder replaces the order in which entity kinds are loaded.
func WithOrder(order []catalog.Kind) Option {
	return func(i *Importer) {
		i.order = order
	}
}

// New creates an Importer. It fails when the load order is invalid or a
// kind in it has no handler.
func New(db database.Database, stores StoresFactory, logger *slog.Logger, opts ...Option) (*Importer, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	i := &Importer{
		db:     db,
		stores: stores,
		order:  catalog.ImportOrder,
		clock:  time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.registry == nil {
		i.registry = DefaultRegistry(i.clock)
	}

	kinds := append(append([]catalog.Kind(nil), i.order...), catalog.KindGenreTitles)
	if err := catalog.ValidateOrder(kinds); err != nil {
		return nil, fmt.Errorf("new importer: %w", err)
	}
	for _, kind := range kinds {
		if _, err := i.registry.Handler(kind); err != nil {
			return nil, fmt.Errorf("new importer: %w", err)
		}
	}
	return i, nil
}

// Run discovers and binds the CSV files under params.Dir, then imports them.
func (i *Importer) Run(ctx context.Context, params RunParams) (Report, error) {
	paths, err := Discover(ctx, params.Dir, i.logger)
	if err != nil {
		return Report{}, err
	}
	sources, err := Bind(paths, i.logger)
	if err != nil {
		return Report{}, err
	}
	report, err := i.Import(ctx, sources, params)
	report.Dir = params.Dir
	return report, err
}

// Import loads sources. The report is returned even when the run stops
// early, covering the kinds processed so far.
func (i *Importer) Import(ctx context.Context, sources Sources, params RunParams) (Report, error) {
	runID := uuid.NewString()
	ctx = log.WithRunID(ctx, runID)
	logger := i.logger.With(slog.String("run_id", runID))

	report := Report{
		RunID:     runID,
		StartedAt: i.clock(),
		DryRun:    params.DryRun,
	}
	logger.InfoContext(ctx, "import started",
		slog.Int("sources", sources.Len()),
		slog.Bool("dry_run", params.DryRun),
	)

	load := func(db database.Database) error {
		for _, kind := range i.order {
			kr, err := i.importKind(ctx, db, sources, kind, logger)
			report.Kinds = append(report.Kinds, kr)
			if err != nil {
				return err
			}
		}
		kr, err := i.importAssociations(ctx, db, sources, logger)
		report.Kinds = append(report.Kinds, kr)
		return err
	}

	var err error
	if params.DryRun {
		err = database.WithRollback(ctx, i.db, load)
	} else {
		err = load(i.db)
	}
	report.FinishedAt = i.clock()

	totals := report.Totals()
	if err != nil {
		logger.WarnContext(ctx, "import stopped",
			slog.Int("inserted", totals.Inserted),
			slog.Int("skipped", totals.Skipped),
			slog.Any("error", err),
		)
		return report, fmt.Errorf("import: %w", err)
	}

	logger.InfoContext(ctx, "import finished",
		slog.Int("rows", totals.Rows),
		slog.Int("inserted", totals.Inserted),
		slog.Int("unchanged", totals.Unchanged),
		slog.Int("skipped", totals.Skipped),
		slog.Duration("duration", report.Duration()),
	)

	if params.Strict && !report.Complete() {
		return report, fmt.Errorf("%w: %d rows skipped, %d files missing or unreadable",
			ErrIncomplete, totals.Skipped, report.incompleteFiles())
	}
	return report, nil
}

// importAssociations loads the genre/title links. It runs after every
// entity kind.
func (i *Importer) importAssociations(ctx context.Context, db database.Database, sources Sources, logger *slog.Logger) (KindReport, error) {
	return i.importKind(ctx, db, sources, catalog.KindGenreTitles, logger)
}

// importKind loads one source file. A file that cannot be opened or has an
// invalid header is reported in KindReport.Err and does not stop the run;
// only a cancelled context does.
func (i *Importer) importKind(ctx context.Context, db database.Database, sources Sources, kind catalog.Kind, logger *slog.Logger) (KindReport, error) {
	kr := KindReport{Kind: kind}
	if err := ctx.Err(); err != nil {
		return kr, err
	}

	path, ok := sources.Path(kind)
	if !ok {
		kr.Missing = true
		logger.WarnContext(ctx, "source file missing", slog.String("kind", kind.String()))
		return kr, nil
	}
	kr.Path = path
	logger = logger.With(slog.String("kind", kind.String()), slog.String("file", path))

	handler, err := i.registry.Handler(kind)
	if err != nil {
		return kr, err
	}

	tbl, err := openTable(path, handler.Columns())
	if err != nil {
		kr.setErr(err)
		logger.ErrorContext(ctx, "cannot load file", slog.Any("error", err))
		return kr, nil
	}
	defer func() { _ = tbl.close() }()

	for {
		if err := ctx.Err(); err != nil {
			return kr, err
		}

		rec, err := tbl.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if rec.Line() == 0 {
				kr.setErr(fmt.Errorf("read %s: %w", path, err))
				logger.ErrorContext(ctx, "cannot read file", slog.Any("error", err))
				return kr, nil
			}
			outcome := RowOutcome{Line: rec.Line(), Outcome: OutcomeSkipped, Reason: ReasonInvalidValue, Err: err}
			kr.Add(outcome)
			logSkip(ctx, logger, outcome)
			continue
		}

		outcome, err := i.importRow(ctx, db, handler, rec)
		if err != nil {
			return kr, err
		}
		kr.Add(outcome)
		if outcome.Outcome == OutcomeSkipped {
			logSkip(ctx, logger, outcome)
		}
	}

	logger.InfoContext(ctx, "file imported",
		slog.Int("rows", kr.Rows),
		slog.Int("inserted", kr.Inserted),
		slog.Int("unchanged", kr.Unchanged),
		slog.Int("skipped", kr.Skipped),
	)
	return kr, nil
}

// importRow persists one row in its own transaction. The returned error is
// non-nil only when the run must stop.
func (i *Importer) importRow(ctx context.Context, db database.Database, handler Handler, rec Record) (RowOutcome, error) {
	outcome, err := database.WithTransactionResult(ctx, db, func(tx database.Database) (Outcome, error) {
		return handler.Import(ctx, i.stores(tx), rec)
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return RowOutcome{}, ctxErr
		}
		if fatal(err) {
			return RowOutcome{}, err
		}
		return skipped(rec.Line(), err), nil
	}
	if outcome == OutcomeUnchanged {
		return unchanged(rec.Line()), nil
	}
	return inserted(rec.Line()), nil
}

func logSkip(ctx context.Context, logger *slog.Logger, o RowOutcome) {
	logger.WarnContext(ctx, "row skipped",
		slog.Int("line", o.Line),
		slog.String("reason", string(o.Reason)),
		slog.Any("error", o.Err),
	)
}
