package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkoval8/ClassBookingService/internal/domain"
	catalogRepo "github.com/dkoval8/ClassBookingService/internal/infra/storage/catalog"
	"github.com/dkoval8/ClassBookingService/pkg/types"
)

// UseCase use case для получения слотов, доступных для бронирования
// Чистое чтение: не берет блокировок и допускает слегка устаревшие счетчики -
// авторитетная проверка вместимости выполняется еще раз при коммите бронирования
type UseCase struct {
	catalogRepo  CatalogRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Пустой список - валидный результат, а не ошибка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: class_assignment=%d, date=%s",
		req.ClassAssignmentID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем назначение класса вместе с календарем выходных
	assignment, err := uc.catalogRepo.GetClassAssignment(ctx, req.ClassAssignmentID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrClassAssignmentNotFound) {
			uc.logger.Warn("GetAvailability: class assignment id=%d not found", req.ClassAssignmentID)
			return nil, ErrClassAssignmentNotFound
		}
		uc.logger.Error("GetAvailability: failed to get class assignment id=%d: %v", req.ClassAssignmentID, err)
		return nil, fmt.Errorf("%w: failed to get class assignment: %v", ErrInternal, err)
	}

	// 4. На прошедшую дату бронировать нечего
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailability: date %s is in the past", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req), nil
	}

	// 5. Выходной день календаря исключает все слоты назначения разом
	if assignment.Calendar.IsHoliday(req.Date.Weekday()) {
		uc.logger.Info("GetAvailability: %s is a holiday for class_assignment=%d",
			req.Date.Weekday(), req.ClassAssignmentID)
		return uc.emptyResponse(req), nil
	}

	// 6. Получаем назначения слотов (отсортированы по времени начала)
	slotAssignments, err := uc.catalogRepo.ListSlotAssignments(ctx, req.ClassAssignmentID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list slot assignments: %v", err)
		return nil, fmt.Errorf("%w: failed to list slot assignments: %v", ErrInternal, err)
	}

	if len(slotAssignments) == 0 {
		return uc.emptyResponse(req), nil
	}

	// 7. Подсчитываем занятость каждого слота на эту дату одним запросом
	ids := make([]int64, len(slotAssignments))
	for i, sa := range slotAssignments {
		ids[i] = sa.ID
	}

	counts, err := uc.bookingRepo.CountForAssignments(ctx, ids, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	// 8. Фильтруем заполненные и уже начавшиеся (для сегодняшней даты) слоты
	slots := filterBookable(slotAssignments, counts, isSameDay(req.Date, now), types.NewTimeString(now))

	uc.logger.Info("GetAvailability: %d of %d slots bookable for class_assignment=%d, date=%s",
		len(slots), len(slotAssignments), req.ClassAssignmentID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:              req.Date,
		ClassAssignmentID: req.ClassAssignmentID,
		Slots:             slots,
	}, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		Date:              req.Date,
		ClassAssignmentID: req.ClassAssignmentID,
		Slots:             []Slot{},
	}
}
