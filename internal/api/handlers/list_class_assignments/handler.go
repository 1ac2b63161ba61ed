package list_class_assignments

import (
	"context"
	"net/http"

	"github.com/dkoval8/ClassBookingService/internal/api/handlers"
	"github.com/dkoval8/ClassBookingService/internal/domain"
)

type CatalogService interface {
	ListClassAssignments(ctx context.Context) ([]*domain.ClassAssignment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ClassAssignmentResponse HTTP response model
type ClassAssignmentResponse struct {
	ID                int64  `json:"id"`
	ClassTitle        string `json:"classTitle"`
	InstructorName    string `json:"instructorName"`
	HolidayCalendarID int64  `json:"holidayCalendarId"`
}

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/class-assignments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.service.ListClassAssignments(r.Context())
	if err != nil {
		h.logger.Error("GET /class-assignments - Failed to list class assignments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := make([]ClassAssignmentResponse, len(assignments))
	for i, assignment := range assignments {
		response[i] = ClassAssignmentResponse{
			ID:                assignment.ID,
			ClassTitle:        assignment.ClassTitle,
			InstructorName:    assignment.InstructorName,
			HolidayCalendarID: assignment.HolidayCalendarID,
		}
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
