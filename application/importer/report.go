package importer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/yamdb/yamdb/domain/catalog"
)

// Format selects how a report is rendered.
type Format string

// Format values.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. An empty name means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q: want text, json or yaml", s)
	}
}

// Skip records one skipped row.
type Skip struct {
	Line    int        `json:"line" yaml:"line"`
	Reason  SkipReason `json:"reason" yaml:"reason"`
	Message string     `json:"message" yaml:"message"`
}

// KindReport summarizes the import of one kind.
type KindReport struct {
	Kind      catalog.Kind `json:"kind" yaml:"kind"`
	Path      string       `json:"path,omitempty" yaml:"path,omitempty"`
	Rows      int          `json:"rows" yaml:"rows"`
	Inserted  int          `json:"inserted" yaml:"inserted"`
	Unchanged int          `json:"unchanged" yaml:"unchanged"`
	Skipped   int          `json:"skipped" yaml:"skipped"`
	Skips     []Skip       `json:"skips,omitempty" yaml:"skips,omitempty"`
	Missing   bool         `json:"missing,omitempty" yaml:"missing,omitempty"`
	Err       error        `json:"-" yaml:"-"`
	Error     string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// Add counts one row outcome.
func (k *KindReport) Add(o RowOutcome) {
	k.Rows++
	switch o.Outcome {
	case OutcomeInserted:
		k.Inserted++
	case OutcomeUnchanged:
		k.Unchanged++
	case OutcomeSkipped:
		k.Skipped++
		msg := ""
		if o.Err != nil {
			msg = o.Err.Error()
		}
		k.Skips = append(k.Skips, Skip{Line: o.Line, Reason: o.Reason, Message: msg})
	}
}

// setErr records a file-level failure.
func (k *KindReport) setErr(err error) {
	k.Err = err
	if err != nil {
		k.Error = err.Error()
	}
}

// Complete reports whether the kind was loaded without skips or errors.
func (k KindReport) Complete() bool {
	return !k.Missing && k.Err == nil && k.Skipped == 0
}

func (k KindReport) status() string {
	switch {
	case k.Missing:
		return "missing"
	case k.Err != nil:
		return "error"
	default:
		return "ok"
	}
}

// Report summarizes an import run.
type Report struct {
	RunID      string       `json:"run_id" yaml:"run_id"`
	Dir        string       `json:"dir,omitempty" yaml:"dir,omitempty"`
	StartedAt  time.Time    `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time    `json:"finished_at" yaml:"finished_at"`
	DryRun     bool         `json:"dry_run" yaml:"dry_run"`
	Kinds      []KindReport `json:"kinds" yaml:"kinds"`
}

// Kind returns the report for kind.
func (r Report) Kind(kind catalog.Kind) (KindReport, bool) {
	for _, k := range r.Kinds {
		if k.Kind == kind {
			return k, true
		}
	}
	return KindReport{}, false
}

// Totals sums the row counts over every kind.
func (r Report) Totals() KindReport {
	var t KindReport
	for _, k := range r.Kinds {
		t.Rows += k.Rows
		t.Inserted += k.Inserted
		t.Unchanged += k.Unchanged
		t.Skipped += k.Skipped
	}
	return t
}

// Complete reports whether every kind was loaded without skips or errors.
func (r Report) Complete() bool {
	for _, k := range r.Kinds {
		if !k.Complete() {
			return false
		}
	}
	return true
}

func (r Report) incompleteFiles() int {
	n := 0
	for _, k := range r.Kinds {
		if k.Missing || k.Err != nil {
			n++
		}
	}
	return n
}

// Duration returns how long the run took.
func (r Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Render writes the report to w in the given format.
func (r Report) Render(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return enc.Close()
	default:
		return r.renderText(w)
	}
}

func (r Report) renderText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tROWS\tINSERTED\tUNCHANGED\tSKIPPED\tSTATUS")
	for _, k := range r.Kinds {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%s\n", k.Kind, k.Rows, k.Inserted, k.Unchanged, k.Skipped, k.status())
	}
	t := r.Totals()
	fmt.Fprintf(tw, "total\t%d\t%d\t%d\t%d\t\n", t.Rows, t.Inserted, t.Unchanged, t.Skipped)
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	for _, k := range r.Kinds {
		if k.Err != nil {
			fmt.Fprintf(w, "\n%s: %v\n", k.Kind, k.Err)
		}
		for _, s := range k.Skips {
			fmt.Fprintf(w, "%s:%d: %s: %s\n", k.Path, s.Line, s.Reason, s.Message)
		}
	}

	if r.DryRun {
		fmt.Fprintln(w, "\nDry run: no changes were committed.")
	}
	_, err := fmt.Fprintf(w, "Run %s finished in %s.\n", r.RunID, r.Duration().Round(time.Millisecond))
	return err
}
