package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/dkoval8/ClassBookingService/pkg/dbmetrics"
)

var (
	// ErrRetriesExhausted возвращается, когда сериализуемая транзакция не смогла
	// зафиксироваться за отведенное число попыток
	// Сентинел общий для txmanager и simpletxmanager
	ErrRetriesExhausted = errors.New("txmanager: serializable transaction retries exhausted")
)

// DefaultMaxRetries число повторов сериализуемой транзакции по умолчанию
const DefaultMaxRetries = 3

// DefaultLockTimeout предел ожидания блокировок строк внутри одной попытки
// Ожидание на FOR UPDATE конкурирующего коммита не может быть бесконечным:
// по истечении предела попытка снимается и повторяется в счет бюджета
const DefaultLockTimeout = 3 * time.Second

// TxBeginner интерфейс для начала транзакций (реализуется *dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager выполняет функции в сериализуемых транзакциях
// с повтором при serialization failure
type TransactionManager struct {
	db          TxBeginner
	maxRetries  int
	lockTimeout time.Duration
}

// NewTransactionManager создает transaction manager
// maxRetries <= 0 заменяется на DefaultMaxRetries,
// lockTimeout <= 0 на DefaultLockTimeout
func NewTransactionManager(db TxBeginner, maxRetries int, lockTimeout time.Duration) *TransactionManager {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	return &TransactionManager{db: db, maxRetries: maxRetries, lockTimeout: lockTimeout}
}

// DoSerializable выполняет fn внутри транзакции с уровнем изоляции SERIALIZABLE
// Исполнитель транзакции кладется в context (dbmetrics.WithExecutor), repositories
// подхватывают его через dbmetrics.GetExecutor
//
// При serialization failure (SQLSTATE 40001), deadlock (40P01) или истекшем
// lock_timeout (55P03) транзакция откатывается и повторяется заново, до
// maxRetries попыток. PostgreSQL поднимает 40001/40P01 и на отдельных
// стейтментах, не только на COMMIT - fn обязана сохранять ошибку драйвера
// в цепочке (%w), иначе конфликт не будет распознан как повторяемый.
// После исчерпания попыток возвращается ErrRetriesExhausted - бесконечных
// повторов нет
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 0; attempt < m.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("txmanager: context cancelled: %w", err)
		}

		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: last error: %v", ErrRetriesExhausted, lastErr)
}

func (m *TransactionManager) runOnce(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("txmanager: begin transaction: %w", err)
	}

	// Ограничиваем ожидание блокировок в рамках этой транзакции
	lockStmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", m.lockTimeout.Milliseconds())
	if _, err := tx.ExecContext(ctx, lockStmt); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("txmanager: set lock timeout: %w", err)
	}

	txCtx := dbmetrics.WithExecutor(ctx, tx)

	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("txmanager: commit transaction: %w", err)
	}

	return nil
}

// IsSerializationFailure определяет, является ли ошибка конфликтом сериализации,
// после которого транзакцию можно безопасно повторить
// Работает через errors.As и видит *pq.Error сквозь любые обертки %w
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	// 40001 - serialization_failure, 40P01 - deadlock_detected
	return pqErr.Code == "40001" || pqErr.Code == "40P01"
}

// IsLockTimeout определяет, что ожидание блокировки превысило lock_timeout
// (SQLSTATE 55P03, lock_not_available)
func IsLockTimeout(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "55P03"
}

// IsRetryable объединяет условия, при которых попытку транзакции можно повторить
func IsRetryable(err error) bool {
	return IsSerializationFailure(err) || IsLockTimeout(err)
}
