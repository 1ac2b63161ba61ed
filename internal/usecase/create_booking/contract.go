package create_booking

import (
	"context"
	"time"

	"github.com/dkoval8/ClassBookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория справочника
type CatalogRepository interface {
	// GetSlotAssignment возвращает назначение слота вместе со слотом
	// и календарем выходных назначения класса
	GetSlotAssignment(ctx context.Context, id int64) (*domain.SlotAssignment, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetBySlotAndDate возвращает бронирования ключа (slot_assignment, booking_date);
	// внутри транзакции блокирует их (FOR UPDATE)
	GetBySlotAndDate(ctx context.Context, slotAssignmentID int64, date time.Time) ([]*domain.Booking, error)
	ExistsByEmail(ctx context.Context, clientEmail string, slotAssignmentID int64, date time.Time) (bool, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
