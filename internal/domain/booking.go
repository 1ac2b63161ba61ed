package domain

import "time"

// Booking is a client's reservation of a SlotAssignment on a calendar date
// Unique per (client, slot_assignment, booking_date); created exactly once,
// never mutated by the engine
type Booking struct {
	ID               int64
	ClientID         int64
	SlotAssignmentID int64
	BookingDate      time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
