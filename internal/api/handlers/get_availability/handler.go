package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dkoval8/ClassBookingService/internal/api/handlers"
	"github.com/dkoval8/ClassBookingService/internal/domain"
	getAvailability "github.com/dkoval8/ClassBookingService/internal/usecase/get_availability"
)

var (
	payloadInvalidAssignmentID = handlers.ErrorPayload{
		Kind:        handlers.KindInvalidInput,
		Title:       "Incorrect Id",
		Description: "class assignment id is incorrect",
		Field:       "assignmentId",
	}
	payloadInvalidDate = handlers.ErrorPayload{
		Kind:        handlers.KindInvalidInput,
		Title:       "Incorrect date",
		Description: "date must be in YYYY-MM-DD format",
		Field:       "date",
	}
	payloadAssignmentNotFound = handlers.ErrorPayload{
		Kind:        handlers.KindInvalidSlot,
		Title:       "Incorrect Id",
		Description: "class assignment does not exist",
		Field:       "assignmentId",
	}
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/class-assignments/{assignmentId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := strconv.ParseInt(mux.Vars(r)["assignmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid assignment id: %v", err)
		handlers.RespondError(w, http.StatusBadRequest, payloadInvalidAssignmentID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /available-slots - Invalid date: %v", err)
		handlers.RespondError(w, http.StatusBadRequest, payloadInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		ClassAssignmentID: assignmentID,
		Date:              date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrClassAssignmentNotFound):
			h.logger.Warn("GET /available-slots - Class assignment not found: id=%d", assignmentID)
			handlers.RespondError(w, http.StatusNotFound, payloadAssignmentNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: %v", err)
			handlers.RespondError(w, http.StatusBadRequest, payloadInvalidAssignmentID)

		default:
			h.logger.Error("GET /available-slots - Failed to get availability: id=%d, error=%v", assignmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
