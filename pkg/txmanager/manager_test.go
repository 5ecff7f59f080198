package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LRS-RoomReservationService/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) QueryRowContext(_ context.Context, _ string, _ ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) QueryContext(_ context.Context, _ string, _ ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) ExecContext(_ context.Context, _ string, _ ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

// fakeBeginner выдает по одной транзакции на попытку; commitErrs задает
// ошибку коммита для каждой следующей транзакции
type fakeBeginner struct {
	begins     int
	commitErrs []error
	lastOpts   *sql.TxOptions
	txs        []*fakeTx
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	var commitErr error
	if b.begins < len(b.commitErrs) {
		commitErr = b.commitErrs[b.begins]
	}
	b.begins++
	b.lastOpts = opts

	tx := &fakeTx{commitErr: commitErr}
	b.txs = append(b.txs, tx)
	return tx, nil
}

func serializationErr() error {
	return &pq.Error{Code: "40001"}
}

func TestDoSerializable_Success(t *testing.T) {
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	var sawTx bool
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		sawTx = dbmetrics.IsInTransaction(ctx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, sawTx, "fn должна видеть транзакцию в context")
	assert.Equal(t, 1, beginner.begins)
	assert.Equal(t, sql.LevelSerializable, beginner.lastOpts.Isolation)
	assert.True(t, beginner.txs[0].committed)
}

func TestDoSerializable_RetriesCommitSerializationFailure(t *testing.T) {
	// Первые два коммита падают с 40001, третий проходит
	beginner := &fakeBeginner{
		commitErrs: []error{serializationErr(), serializationErr(), nil},
	}
	manager := NewTransactionManager(beginner)

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, beginner.begins, "конфликт сериализации должен повторяться")
	assert.Equal(t, 3, calls)
}

func TestDoSerializable_RetriesExhausted(t *testing.T) {
	beginner := &fakeBeginner{
		commitErrs: []error{serializationErr(), serializationErr(), serializationErr()},
	}
	manager := NewTransactionManager(beginner)

	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransaction)
	assert.Equal(t, maxRetries, beginner.begins)
}

func TestDoSerializable_BusinessErrorNotRetried(t *testing.T) {
	errConflict := errors.New("slot conflict")
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		return errConflict
	})

	require.ErrorIs(t, err, errConflict)
	assert.Equal(t, 1, beginner.begins, "бизнес-ошибки не повторяются")
	assert.True(t, beginner.txs[0].rolledBack)
	assert.False(t, beginner.txs[0].committed)
}

func TestDoSerializable_RetriesWrappedSerializationFailureFromFn(t *testing.T) {
	// 40001 из запроса внутри fn приходит обернутым, но с сохраненной
	// цепочкой - retry-цикл обязан его распознать
	beginner := &fakeBeginner{}
	manager := NewTransactionManager(beginner)

	calls := 0
	err := manager.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return fmt.Errorf("internal error: failed to get reservations: %w", serializationErr())
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, beginner.begins)
	assert.True(t, beginner.txs[0].rolledBack)
	assert.True(t, beginner.txs[1].committed)
}
