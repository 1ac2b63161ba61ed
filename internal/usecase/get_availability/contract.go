package get_availability

import (
	"context"
	"time"

	"github.com/dkoval8/ClassBookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория справочника
type CatalogRepository interface {
	GetClassAssignment(ctx context.Context, id int64) (*domain.ClassAssignment, error)
	// ListSlotAssignments возвращает назначения слотов, отсортированные по времени начала
	ListSlotAssignments(ctx context.Context, classAssignmentID int64) ([]*domain.SlotAssignment, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// CountForAssignments возвращает количество бронирований на дату по каждому назначению слота
	CountForAssignments(ctx context.Context, slotAssignmentIDs []int64, date time.Time) (map[int64]int, error)
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
