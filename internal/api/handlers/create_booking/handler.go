package create_booking

import (
	"errors"
	"net/http"

	"github.com/dkoval8/ClassBookingService/internal/api/handlers"
	createBooking "github.com/dkoval8/ClassBookingService/internal/usecase/create_booking"
)

// Тела ошибок бизнес-правил: kind для машин, title/description для людей,
// field - поле запроса, вызвавшее отказ
var (
	payloadInvalidBody = handlers.ErrorPayload{
		Kind:        handlers.KindInvalidInput,
		Title:       "Incorrect request",
		Description: "request body is malformed",
	}
	payloadInvalidDate = handlers.ErrorPayload{
		Kind:        handlers.KindInvalidInput,
		Title:       "Incorrect date",
		Description: "booking date must be in YYYY-MM-DD format",
		Field:       "booking_date",
	}
	payloadInvalidInput = handlers.ErrorPayload{
		Kind:        handlers.KindInvalidInput,
		Title:       "Incorrect request",
		Description: "one or more fields are invalid",
	}
	payloadSlotNotFound = handlers.ErrorPayload{
		Kind:        handlers.KindInvalidSlot,
		Title:       "Incorrect Id",
		Description: "slot assignment id is incorrect",
		Field:       "slot_assignment_id",
	}
	payloadPastDate = handlers.ErrorPayload{
		Kind:        handlers.KindPastDate,
		Title:       "Date has passed",
		Description: "booking date is in the past",
		Field:       "booking_date",
	}
	payloadPastSlot = handlers.ErrorPayload{
		Kind:        handlers.KindPastSlot,
		Title:       "Slot has started",
		Description: "this slot has already started today",
		Field:       "slot_assignment_id",
	}
	payloadDuplicate = handlers.ErrorPayload{
		Kind:        handlers.KindDuplicateBooking,
		Title:       "Already booked",
		Description: "you have already booked this slot for this date",
		Field:       "slot_assignment_id",
	}
	payloadCapacity = handlers.ErrorPayload{
		Kind:        handlers.KindCapacityExceeded,
		Title:       "Slots are filled",
		Description: "max people are filled for this slot",
		Field:       "slot_assignment_id",
	}
	payloadClientUpsert = handlers.ErrorPayload{
		Kind:        handlers.KindClientUpsert,
		Title:       "Client error",
		Description: "failed to resolve client identity",
		Field:       "client_email",
	}
	payloadBusy = handlers.ErrorPayload{
		Kind:        handlers.KindBusy,
		Title:       "Busy",
		Description: "the slot is being booked right now, please try again",
	}
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondError(w, http.StatusBadRequest, payloadInvalidBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse booking date: %v", err)
		handlers.RespondError(w, http.StatusBadRequest, payloadInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondError(w, http.StatusBadRequest, payloadInvalidInput)

		case errors.Is(err, createBooking.ErrSlotAssignmentNotFound):
			h.logger.Warn("POST /bookings - Slot assignment not found: id=%d", req.SlotAssignmentID)
			handlers.RespondError(w, http.StatusNotFound, payloadSlotNotFound)

		case errors.Is(err, createBooking.ErrPastDate):
			h.logger.Warn("POST /bookings - Past date: slot_assignment=%d, date=%s", req.SlotAssignmentID, req.BookingDate)
			handlers.RespondError(w, http.StatusBadRequest, payloadPastDate)

		case errors.Is(err, createBooking.ErrPastSlot):
			h.logger.Warn("POST /bookings - Past slot: slot_assignment=%d", req.SlotAssignmentID)
			handlers.RespondError(w, http.StatusBadRequest, payloadPastSlot)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: slot_assignment=%d, client=%s",
				req.SlotAssignmentID, req.ClientEmail)
			handlers.RespondError(w, http.StatusConflict, payloadDuplicate)

		case errors.Is(err, createBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Capacity exceeded: slot_assignment=%d, date=%s",
				req.SlotAssignmentID, req.BookingDate)
			handlers.RespondError(w, http.StatusConflict, payloadCapacity)

		case errors.Is(err, createBooking.ErrClientUpsert):
			h.logger.Error("POST /bookings - Client upsert failed: client=%s, error=%v", req.ClientEmail, err)
			handlers.RespondError(w, http.StatusInternalServerError, payloadClientUpsert)

		case errors.Is(err, createBooking.ErrBusy):
			h.logger.Warn("POST /bookings - Commit busy: slot_assignment=%d, date=%s",
				req.SlotAssignmentID, req.BookingDate)
			handlers.RespondError(w, http.StatusServiceUnavailable, payloadBusy)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: slot_assignment=%d, error=%v",
				req.SlotAssignmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, slot_assignment=%d",
		result.ID, req.SlotAssignmentID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
