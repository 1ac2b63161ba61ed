package create_booking

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dkoval8/ClassBookingService/internal/domain"
	"github.com/dkoval8/ClassBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SlotAssignmentID <= 0 {
		return fmt.Errorf("%w: slotAssignmentID must be positive", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ClientName)
	if name == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	if len(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: clientName is too long", ErrInvalidInput)
	}

	if req.ClientEmail == "" {
		return fmt.Errorf("%w: clientEmail is required", ErrInvalidInput)
	}
	if len(req.ClientEmail) > domain.MaxClientEmailLength {
		return fmt.Errorf("%w: clientEmail is too long", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(req.ClientEmail); err != nil {
		return fmt.Errorf("%w: invalid clientEmail format", ErrInvalidInput)
	}

	if req.BookingDate.IsZero() {
		return fmt.Errorf("%w: bookingDate is required", ErrInvalidInput)
	}

	return nil
}

// checkSchedule проверяет, что назначение слота предлагается на запрошенную дату
// Порядок проверок фиксирован, первая сработавшая выигрывает:
// выходной день календаря, дата в прошлом, уже начавшийся сегодняшний слот
func checkSchedule(sa *domain.SlotAssignment, bookingDate, now time.Time) error {
	// Слот в выходной день календаря - не предлагаемый экземпляр на эту дату,
	// для клиента он неотличим от несуществующего
	if sa.Assignment.Calendar.IsHoliday(bookingDate.Weekday()) {
		return ErrSlotAssignmentNotFound
	}

	if isDateInPast(bookingDate, now) {
		return ErrPastDate
	}

	if isSameDay(bookingDate, now) && sa.Slot.HasStarted(types.NewTimeString(now)) {
		return ErrPastSlot
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
