package simpletxmanager

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dkoval8/ClassBookingService/pkg/dbmetrics"
	"github.com/dkoval8/ClassBookingService/pkg/txmanager"
)

// TransactionManager вариант transaction manager для *sql.DB без обертки метрик
// Используется, когда сбор метрик выключен в конфигурации
type TransactionManager struct {
	db          *sql.DB
	maxRetries  int
	lockTimeout time.Duration
}

// NewTransactionManager создает transaction manager над *sql.DB
func NewTransactionManager(db *sql.DB, maxRetries int, lockTimeout time.Duration) *TransactionManager {
	if maxRetries <= 0 {
		maxRetries = txmanager.DefaultMaxRetries
	}
	if lockTimeout <= 0 {
		lockTimeout = txmanager.DefaultLockTimeout
	}
	return &TransactionManager{db: db, maxRetries: maxRetries, lockTimeout: lockTimeout}
}

// DoSerializable выполняет fn в сериализуемой транзакции с повтором
// при serialization failure или lock timeout, семантика идентична
// txmanager.DoSerializable
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < m.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("simpletxmanager: context cancelled: %w", err)
		}

		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !txmanager.IsRetryable(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: last error: %v", txmanager.ErrRetriesExhausted, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("simpletxmanager: begin transaction: %w", err)
	}

	// Ограничиваем ожидание блокировок в рамках этой транзакции
	lockStmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", m.lockTimeout.Milliseconds())
	if _, err := tx.ExecContext(ctx, lockStmt); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("simpletxmanager: set lock timeout: %w", err)
	}

	txCtx := dbmetrics.WithExecutor(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("simpletxmanager: commit transaction: %w", err)
	}

	return nil
}
