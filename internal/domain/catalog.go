package domain

import "time"

// HolidayCalendar defines weekly recurring closures for a class assignment
// One flag per weekday; immutable from the engine's perspective
type HolidayCalendar struct {
	ID               int64
	MondayHoliday    bool
	TuesdayHoliday   bool
	WednesdayHoliday bool
	ThursdayHoliday  bool
	FridayHoliday    bool
	SaturdayHoliday  bool
	SundayHoliday    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsHoliday reports whether the given weekday is marked as a holiday
func (c *HolidayCalendar) IsHoliday(weekday time.Weekday) bool {
	switch weekday {
	case time.Monday:
		return c.MondayHoliday
	case time.Tuesday:
		return c.TuesdayHoliday
	case time.Wednesday:
		return c.WednesdayHoliday
	case time.Thursday:
		return c.ThursdayHoliday
	case time.Friday:
		return c.FridayHoliday
	case time.Saturday:
		return c.SaturdayHoliday
	case time.Sunday:
		return c.SundayHoliday
	default:
		return false
	}
}

// ClassAssignment binds one instructor to one class and carries the
// holiday calendar for that pairing. Unique per (instructor, class)
type ClassAssignment struct {
	ID                int64
	InstructorID      int64
	ClassID           int64
	HolidayCalendarID int64

	// Joined data, populated by the catalog repository
	ClassTitle     string
	InstructorName string
	Calendar       *HolidayCalendar

	CreatedAt time.Time
	UpdatedAt time.Time
}
