package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/dkoval8/ClassBookingService/internal/domain"
	"github.com/dkoval8/ClassBookingService/pkg/dbmetrics"
	"github.com/dkoval8/ClassBookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её
//
// Нарушение уникальности (client, slot_assignment, booking_date) мапится в
// ErrDuplicateBooking - гонка двух одинаковых запросов никогда не отдается
// наружу как сырая ошибка БД
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"client_id",
			"slot_assignment_id",
			"booking_date",
		).
		Values(
			booking.ClientID,
			booking.SlotAssignmentID,
			booking.BookingDate,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateBooking
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetBySlotAndDate получает все бронирования для ключа (slot_assignment, booking_date)
//
// Внутри транзакции добавляет FOR UPDATE - это точка сериализации коммита:
// конкурирующие коммиты по одному ключу блокируются до завершения текущего,
// и повторная проверка вместимости с последующей вставкой выполняется как
// неделимая единица
func (r *Repository) GetBySlotAndDate(ctx context.Context, slotAssignmentID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"client_id",
		"slot_assignment_id",
		"booking_date",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"slot_assignment_id": slotAssignmentID}).
		Where(squirrel.Eq{"booking_date": date}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlotAndDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlotAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.ClientID,
			&booking.SlotAssignmentID,
			&booking.BookingDate,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetBySlotAndDate - scan row: %w", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBySlotAndDate - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// CountForAssignments подсчитывает бронирования на дату для набора назначений слотов
// одним запросом (GROUP BY). Назначения без бронирований в мапе отсутствуют
func (r *Repository) CountForAssignments(ctx context.Context, slotAssignmentIDs []int64, date time.Time) (map[int64]int, error) {
	counts := make(map[int64]int, len(slotAssignmentIDs))
	if len(slotAssignmentIDs) == 0 {
		return counts, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"slot_assignment_id",
		"COUNT(*)",
	).
		From("bookings").
		Where(squirrel.Eq{"slot_assignment_id": slotAssignmentIDs}).
		Where(squirrel.Eq{"booking_date": date}).
		GroupBy("slot_assignment_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountForAssignments - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountForAssignments - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var slotAssignmentID int64
		var count int
		if err := rows.Scan(&slotAssignmentID, &count); err != nil {
			return nil, fmt.Errorf("%w: CountForAssignments - scan row: %w", ErrScanRow, err)
		}
		counts[slotAssignmentID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountForAssignments - rows error: %w", ErrScanRow, err)
	}

	return counts, nil
}

// ExistsByEmail проверяет наличие бронирования для (client_email, slot_assignment, booking_date)
// Поиск по email, а не по client_id: клиент может еще не существовать
func (r *Repository) ExistsByEmail(ctx context.Context, clientEmail string, slotAssignmentID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings b").
		Join("clients c ON c.id = b.client_id").
		Where(squirrel.Eq{"c.email": clientEmail}).
		Where(squirrel.Eq{"b.slot_assignment_id": slotAssignmentID}).
		Where(squirrel.Eq{"b.booking_date": date}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByEmail - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsByEmail - scan row: %w", ErrScanRow, err)
	}

	return true, nil
}

// isUniqueViolation проверяет, что ошибка - нарушение unique constraint (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
