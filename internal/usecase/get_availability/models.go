package get_availability

import (
	"time"

	"github.com/dkoval8/ClassBookingService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ClassAssignmentID int64     // ID назначения класса (инструктор + класс)
	Date              time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date              time.Time // Дата, на которую запрашивались слоты
	ClassAssignmentID int64     // ID назначения класса
	Slots             []Slot    // Доступные слоты, отсортированы по времени начала
}

// Slot доступное для бронирования назначение слота
type Slot struct {
	SlotAssignmentID int64            // ID назначения слота
	StartTime        types.TimeString // Время начала (например, "09:00")
	EndTime          types.TimeString // Время конца
	Capacity         int              // Максимальное количество участников
	AvailableSpots   int              // Оставшееся количество мест
}
