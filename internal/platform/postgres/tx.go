package postgres

import (
	"context"
	"database/sql"
	"time"

	dErrors "seawatch/pkg/domain-errors"
)

const defaultTxTimeout = 30 * time.Second

// WithTx runs fn in a transaction, committing when fn returns nil and rolling
// back otherwise. A context without a deadline gets defaultTxTimeout.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTxTimeout)
		defer cancel()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
