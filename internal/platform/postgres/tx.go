// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxBeginner is satisfied by [*pgxpool.Pool] and by [pgx.Tx] (savepoints).
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

/*
WithTx runs fn inside a transaction scoped to this call.

The transaction commits when fn returns nil and rolls back on every other
exit path, including a panic (which is re-raised after the rollback).

Returns:
  - error: fn's error unchanged, or a wrapped begin/commit failure
*/
func WithTx(ctx context.Context, db TxBeginner, fn func(tx pgx.Tx) error) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin transaction: %w", err)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			_ = tx.Rollback(ctx)
			panic(recovered)
		}
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				err = errors.Join(err, fmt.Errorf("postgres: rollback: %w", rollbackErr))
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit transaction: %w", err)
	}

	return nil
}
