package get_availability

import (
	"github.com/dkoval8/ClassBookingService/internal/domain"
	getAvailability "github.com/dkoval8/ClassBookingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date              string         `json:"date"`
	ClassAssignmentID int64          `json:"classAssignmentId"`
	Slots             []SlotResponse `json:"slots"`
}

// SlotResponse доступный слот в HTTP ответе
type SlotResponse struct {
	SlotAssignmentID int64  `json:"slotAssignmentId"`
	StartTime        string `json:"startTime"`
	EndTime          string `json:"endTime"`
	Capacity         int    `json:"capacity"`
	AvailableSpots   int    `json:"availableSpots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			SlotAssignmentID: slot.SlotAssignmentID,
			StartTime:        slot.StartTime.String(),
			EndTime:          slot.EndTime.String(),
			Capacity:         slot.Capacity,
			AvailableSpots:   slot.AvailableSpots,
		}
	}

	return &AvailabilityResponse{
		Date:              resp.Date.Format(domain.DateFormat),
		ClassAssignmentID: resp.ClassAssignmentID,
		Slots:             slots,
	}
}
