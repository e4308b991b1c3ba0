// Copyright (c) 2026 Paras Comic. All rights reserved.
// Author: Troon Technologies LLC

package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Troon-Technologies-LLC/paras-comic-backend/internal/platform/postgres"
)

// fakeTx records how the transaction ended. Unused pgx.Tx methods panic.
type fakeTx struct {
	pgx.Tx
	commitErr  error
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Commit(context.Context) error {
	if tx.commitErr != nil {
		return tx.commitErr
	}
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(context.Context) error {
	if tx.committed {
		return pgx.ErrTxClosed
	}
	tx.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	beginErr error
}

func (b *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

func TestWithTx_Commit(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}

	err := postgres.WithTx(context.Background(), db, func(pgx.Tx) error { return nil })

	require.NoError(t, err)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	cause := errors.New("insert failed")

	err := postgres.WithTx(context.Background(), db, func(pgx.Tx) error { return cause })

	assert.ErrorIs(t, err, cause)
	assert.False(t, db.tx.committed)
	assert.True(t, db.tx.rolledBack)
}

func TestWithTx_CommitFailure(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{commitErr: errors.New("serialization failure")}}

	err := postgres.WithTx(context.Background(), db, func(pgx.Tx) error { return nil })

	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit transaction")
	assert.True(t, db.tx.rolledBack)
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}

	assert.Panics(t, func() {
		_ = postgres.WithTx(context.Background(), db, func(pgx.Tx) error { panic("boom") })
	})
	assert.True(t, db.tx.rolledBack)
}

func TestWithTx_BeginFailure(t *testing.T) {
	db := &fakeBeginner{beginErr: errors.New("pool closed")}
	called := false

	err := postgres.WithTx(context.Background(), db, func(pgx.Tx) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
}
