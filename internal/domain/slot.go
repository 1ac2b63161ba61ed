package domain

import (
	"time"

	"github.com/dkoval8/ClassBookingService/pkg/types"
)

// TimeSlot is a reusable daily time window with an attendee capacity
type TimeSlot struct {
	ID        int64
	StartTime types.TimeString
	EndTime   types.TimeString
	Capacity  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValid reports whether the slot satisfies its invariants
// (start_time < end_time, capacity >= 1)
func (s *TimeSlot) IsValid() bool {
	return s.Capacity >= 1 && s.StartTime.IsBefore(s.EndTime)
}

// HasStarted reports whether the slot has already started at the given
// time of day (start_time at or before now)
func (s *TimeSlot) HasStarted(now types.TimeString) bool {
	return !s.StartTime.IsAfter(now)
}

// SlotAssignment is one TimeSlot offered under one ClassAssignment
// Unique per (class_assignment, time_slot)
type SlotAssignment struct {
	ID                int64
	ClassAssignmentID int64
	TimeSlotID        int64

	// Joined data, populated by the catalog repository
	Slot       *TimeSlot
	Assignment *ClassAssignment

	CreatedAt time.Time
	UpdatedAt time.Time
}
