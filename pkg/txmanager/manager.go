// Package txmanager управляет сериализуемыми транзакциями поверх
// dbmetrics.DB. Активная транзакция передается в context и подхватывается
// репозиториями через dbmetrics.GetExecutor.
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/LRS-RoomReservationService/pkg/dbmetrics"
)

// serializationFailure код PostgreSQL для конфликта сериализации
const serializationFailure = "40001"

// maxRetries число повторов при конфликте сериализации
const maxRetries = 3

// ErrTransaction возвращается при инфраструктурных ошибках транзакции
var ErrTransaction = errors.New("txmanager: transaction error")

// TxBeginner интерфейс источника транзакций
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции в сериализуемых транзакциях
type TransactionManager struct {
	db TxBeginner
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// DoSerializable выполняет fn внутри транзакции с уровнем SERIALIZABLE.
// При конфликте сериализации (SQLSTATE 40001) транзакция повторяется до
// maxRetries раз; бизнес-ошибки из fn не повторяются и возвращаются как есть.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: serialization retries exhausted: %v", ErrTransaction, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("%w: begin: %v", ErrTransaction, err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	txCtx := dbmetrics.WithExecutor(ctx, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w: rollback after %w: %v", ErrTransaction, err, rbErr)
		}
		return err
	}

	// Оборачиваем через %w: код 40001 приходит именно на коммите,
	// и isSerializationFailure должен видеть *pq.Error в цепочке
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrTransaction, err)
	}

	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == serializationFailure
	}
	return false
}
