package importer

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yamdb/yamdb/domain/catalog"
	"github.com/yamdb/yamdb/internal/validation"
)

// Outcome is what happened to one source row.
type Outcome string

// Outcome values.
const (
	OutcomeInserted  Outcome = "inserted"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeSkipped   Outcome = "skipped"
)

// SkipReason classifies why a row was skipped.
type SkipReason string

// SkipReason values.
const (
	ReasonInvalidValue     SkipReason = "invalid_value"
	ReasonValidation       SkipReason = "validation"
	ReasonMissingReference SkipReason = "missing_reference"
	ReasonDuplicate        SkipReason = "duplicate"
	ReasonConstraint       SkipReason = "constraint"
)

// RowOutcome is the typed result of importing one row.
type RowOutcome struct {
	Line    int
	Outcome Outcome
	Reason  SkipReason
	Err     error
}

func inserted(line int) RowOutcome {
	return RowOutcome{Line: line, Outcome: OutcomeInserted}
}

func unchanged(line int) RowOutcome {
	return RowOutcome{Line: line, Outcome: OutcomeUnchanged}
}

func skipped(line int, err error) RowOutcome {
	return RowOutcome{Line: line, Outcome: OutcomeSkipped, Reason: classify(err), Err: err}
}

// classify maps a row error to its SkipReason. Errors the store does not
// translate, such as SQLite CHECK failures, count as constraint violations.
func classify(err error) SkipReason {
	var valueErr *ValueError
	var validationErr *validation.Error
	switch {
	case errors.As(err, &valueErr):
		return ReasonInvalidValue
	case errors.As(err, &validationErr),
		errors.Is(err, catalog.ErrScoreRange),
		errors.Is(err, catalog.ErrFutureYear),
		errors.Is(err, catalog.ErrInvalidRole):
		return ReasonValidation
	case errors.Is(err, ErrMissingReference), errors.Is(err, gorm.ErrForeignKeyViolated):
		return ReasonMissingReference
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ReasonDuplicate
	default:
		return ReasonConstraint
	}
}

// fatal reports whether err must stop the run instead of skipping the row.
func fatal(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
