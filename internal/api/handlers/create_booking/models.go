package create_booking

import (
	"time"

	"github.com/dkoval8/ClassBookingService/internal/domain"
	createBooking "github.com/dkoval8/ClassBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotAssignmentID int64  `json:"slotAssignmentId"`
	ClientName       string `json:"clientName"`
	ClientEmail      string `json:"clientEmail"`
	BookingDate      string `json:"bookingDate"` // "2026-09-15"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64  `json:"id"`
	SlotAssignmentID int64  `json:"slotAssignmentId"`
	ClientID         int64  `json:"clientId"`
	BookingDate      string `json:"bookingDate"`
	CreatedAt        string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты)
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		SlotAssignmentID: r.SlotAssignmentID,
		ClientName:       r.ClientName,
		ClientEmail:      r.ClientEmail,
		BookingDate:      bookingDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		SlotAssignmentID: resp.SlotAssignmentID,
		ClientID:         resp.ClientID,
		BookingDate:      resp.BookingDate.Format(domain.DateFormat),
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
	}
}
