package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/wordflip/internal/platform/logger"
)

// TxFn is a function that executes within a database transaction.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction runs fn inside a transaction on db. The transaction is
// committed when fn returns nil and rolled back when it returns an error or
// panics; panics are re-raised after the rollback. Begin and commit failures
// wrap ErrTransactionFailed. fn's own error is returned as is.
func RunInTransaction(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn TxFn) (err error) {
	log := logger.FromContextOrDefault(ctx, slog.Default())

	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		log.ErrorContext(ctx, "failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%w: begin: %w", ErrTransactionFailed, err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.ErrorContext(ctx, "failed to roll back transaction after panic",
					slog.Any("error", rbErr),
					slog.Any("panic", p))
			}
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.ErrorContext(ctx, "failed to roll back transaction",
				slog.Any("rollback_error", rbErr),
				slog.Any("error", err))
			return fmt.Errorf("%w: rollback: %v (original error: %w)", ErrTransactionFailed, rbErr, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		log.ErrorContext(ctx, "failed to commit transaction", slog.Any("error", err))
		return fmt.Errorf("%w: commit: %w", ErrTransactionFailed, err)
	}
	return nil
}
