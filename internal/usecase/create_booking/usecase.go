package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dkoval8/ClassBookingService/internal/domain"
	bookingRepo "github.com/dkoval8/ClassBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/dkoval8/ClassBookingService/internal/infra/storage/catalog"
	clientRepo "github.com/dkoval8/ClassBookingService/internal/infra/storage/client"
	"github.com/dkoval8/ClassBookingService/pkg/txmanager"
)

// UseCase use case для создания бронирования
// Использует сериализуемую транзакцию c блокировкой строк ключа
// (slot_assignment, booking_date) для предотвращения гонки данных:
// повторная проверка вместимости и вставка выполняются как неделимая единица
type UseCase struct {
	catalogRepo  CatalogRepository
	bookingRepo  BookingRepository
	clientRepo   ClientRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	clientRepo ClientRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:  catalogRepo,
		bookingRepo:  bookingRepo,
		clientRepo:   clientRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Двухфазная схема: сначала дешевые проверки-отсечки вне транзакции,
// затем повторная проверка под блокировкой и вставка. Результат предварительной
// проверки не гарантирует успеха коммита - гарантию дает только повторная
// проверка внутри транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slot_assignment=%d, client=%s, date=%s",
		req.SlotAssignmentID, req.ClientEmail, req.BookingDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем назначение слота вместе с календарем выходных
	slotAssignment, err := uc.catalogRepo.GetSlotAssignment(ctx, req.SlotAssignmentID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrSlotAssignmentNotFound) {
			uc.logger.Warn("CreateBooking: slot assignment id=%d not found", req.SlotAssignmentID)
			return nil, ErrSlotAssignmentNotFound
		}
		uc.logger.Error("CreateBooking: failed to get slot assignment id=%d: %v", req.SlotAssignmentID, err)
		return nil, fmt.Errorf("%w: failed to get slot assignment: %w", ErrInternal, err)
	}

	clientEmail := normalizeEmail(req.ClientEmail)

	// 4. Предварительные проверки вне транзакции: отсекают типовые отказы дешево
	if err := uc.precheck(ctx, slotAssignment, clientEmail, req, now); err != nil {
		return nil, err
	}

	// 5. Коммит в сериализуемой транзакции
	var result *domain.Booking

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Блокируем бронирования ключа (slot_assignment, booking_date):
		// FOR UPDATE - точка сериализации конкурирующих коммитов
		bookings, err := uc.bookingRepo.GetBySlotAndDate(txCtx, req.SlotAssignmentID, req.BookingDate)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings for update: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
		}

		// 5.2. Повторяем проверки против стабильного состояния
		if err := checkSchedule(slotAssignment, req.BookingDate, now); err != nil {
			uc.logger.Warn("CreateBooking: schedule check failed in transaction: %v", err)
			return err
		}

		exists, err := uc.bookingRepo.ExistsByEmail(txCtx, clientEmail, req.SlotAssignmentID, req.BookingDate)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check duplicate: %v", err)
			return fmt.Errorf("%w: failed to check duplicate: %w", ErrInternal, err)
		}
		if exists {
			uc.logger.Warn("CreateBooking: duplicate booking, client=%s, slot_assignment=%d, date=%s",
				clientEmail, req.SlotAssignmentID, req.BookingDate.Format(domain.DateFormat))
			return ErrDuplicateBooking
		}

		if len(bookings) >= slotAssignment.Slot.Capacity {
			uc.logger.Warn("CreateBooking: capacity exceeded, %d/%d spots taken, slot_assignment=%d",
				len(bookings), slotAssignment.Slot.Capacity, req.SlotAssignmentID)
			return ErrCapacityExceeded
		}

		// 5.3. Разрешаем идентичность клиента (идемпотентный upsert по email)
		client, err := uc.getOrCreateClient(txCtx, strings.TrimSpace(req.ClientName), clientEmail)
		if err != nil {
			return err
		}

		// 5.4. Вставляем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ClientID:         client.ID,
			SlotAssignmentID: req.SlotAssignmentID,
			BookingDate:      req.BookingDate,
		})
		if err != nil {
			// Проигранная гонка на unique constraint - это дубликат, не сырая ошибка БД
			if errors.Is(err, bookingRepo.ErrDuplicateBooking) {
				uc.logger.Warn("CreateBooking: duplicate booking on insert, client=%s, slot_assignment=%d",
					clientEmail, req.SlotAssignmentID)
				return ErrDuplicateBooking
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Исчерпание бюджета повторов сериализации - временная занятость, не отказ бизнес-правила
		if errors.Is(err, txmanager.ErrRetriesExhausted) {
			uc.logger.Warn("CreateBooking: serializable retries exhausted, slot_assignment=%d, date=%s",
				req.SlotAssignmentID, req.BookingDate.Format(domain.DateFormat))
			return nil, ErrBusy
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:               result.ID,
		SlotAssignmentID: result.SlotAssignmentID,
		ClientID:         result.ClientID,
		BookingDate:      result.BookingDate,
		CreatedAt:        result.CreatedAt,
	}, nil
}

// precheck выполняет предварительные проверки вне транзакции
// Проверки совещательные: между ними и коммитом состояние может измениться,
// поэтому тот же набор повторяется внутри транзакции под блокировкой
func (uc *UseCase) precheck(ctx context.Context, sa *domain.SlotAssignment, clientEmail string, req *Request, now time.Time) error {
	if err := checkSchedule(sa, req.BookingDate, now); err != nil {
		uc.logger.Warn("CreateBooking: schedule precheck failed: %v", err)
		return err
	}

	exists, err := uc.bookingRepo.ExistsByEmail(ctx, clientEmail, req.SlotAssignmentID, req.BookingDate)
	if err != nil {
		uc.logger.Error("CreateBooking: duplicate precheck failed: %v", err)
		return fmt.Errorf("%w: failed to check duplicate: %w", ErrInternal, err)
	}
	if exists {
		uc.logger.Warn("CreateBooking: duplicate booking (precheck), client=%s, slot_assignment=%d",
			clientEmail, req.SlotAssignmentID)
		return ErrDuplicateBooking
	}

	bookings, err := uc.bookingRepo.GetBySlotAndDate(ctx, req.SlotAssignmentID, req.BookingDate)
	if err != nil {
		uc.logger.Error("CreateBooking: capacity precheck failed: %v", err)
		return fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}
	if len(bookings) >= sa.Slot.Capacity {
		uc.logger.Warn("CreateBooking: capacity exceeded (precheck), %d/%d spots taken, slot_assignment=%d",
			len(bookings), sa.Slot.Capacity, req.SlotAssignmentID)
		return ErrCapacityExceeded
	}

	return nil
}

// getOrCreateClient возвращает клиента по email, создавая его при отсутствии
// Конфликт уникальности на вставке (гонка двух первых бронирований одного клиента)
// разрешается повторным чтением, а не ошибкой
func (uc *UseCase) getOrCreateClient(ctx context.Context, name, email string) (*domain.Client, error) {
	client, err := uc.clientRepo.GetByEmail(ctx, email)
	if err == nil {
		return client, nil
	}
	if !errors.Is(err, clientRepo.ErrClientNotFound) {
		uc.logger.Error("CreateBooking: failed to get client by email: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrClientUpsert, err)
	}

	created, err := uc.clientRepo.Create(ctx, &domain.Client{Name: name, Email: email})
	if err == nil {
		return created, nil
	}
	if errors.Is(err, clientRepo.ErrClientExists) {
		// Клиент успел появиться - используем существующего
		client, err := uc.clientRepo.GetByEmail(ctx, email)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to re-read client after conflict: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrClientUpsert, err)
		}
		return client, nil
	}

	uc.logger.Error("CreateBooking: failed to create client: %v", err)
	return nil, fmt.Errorf("%w: %w", ErrClientUpsert, err)
}

// normalizeEmail приводит email к каноничному виду для сравнения и хранения
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
