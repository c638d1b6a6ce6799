package database

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// errRollback is returned from inside WithRollback to force GORM to roll back.
var errRollback = errors.New("rollback requested")

// WithTransaction executes fn with a Database bound to a transaction,
// committing on success or rolling back on error. When db is already bound
// to a transaction the work runs in a savepoint, so a failure only undoes
// what fn did.
func WithTransaction(ctx context.Context, db Database, fn func(tx Database) error) error {
	return db.Session(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(Database{db: tx})
	})
}

// WithTransactionResult executes fn within a transaction, returning the result on success.
func WithTransactionResult[T any](ctx context.Context, db Database, fn func(tx Database) (T, error)) (T, error) {
	var result T
	err := WithTransaction(ctx, db, func(tx Database) error {
		var err error
		result, err = fn(tx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// WithRollback executes fn within a transaction that is always rolled back,
// even when fn succeeds. It returns the error from fn, if any.
func WithRollback(ctx context.Context, db Database, fn func(tx Database) error) error {
	err := WithTransaction(ctx, db, func(tx Database) error {
		if err := fn(tx); err != nil {
			return err
		}
		return errRollback
	})
	if errors.Is(err, errRollback) {
		return nil
	}
	return err
}
