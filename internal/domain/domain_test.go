package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHolidayCalendar_IsHoliday(t *testing.T) {
	calendar := &HolidayCalendar{
		SaturdayHoliday: true,
		SundayHoliday:   true,
	}

	assert.False(t, calendar.IsHoliday(time.Monday))
	assert.False(t, calendar.IsHoliday(time.Friday))
	assert.True(t, calendar.IsHoliday(time.Saturday))
	assert.True(t, calendar.IsHoliday(time.Sunday))

	open := &HolidayCalendar{}
	for d := time.Sunday; d <= time.Saturday; d++ {
		assert.False(t, open.IsHoliday(d))
	}
}

func TestTimeSlot_IsValid(t *testing.T) {
	tests := []struct {
		name string
		slot TimeSlot
		want bool
	}{
		{"valid", TimeSlot{StartTime: "09:00", EndTime: "10:00", Capacity: 1}, true},
		{"zero capacity", TimeSlot{StartTime: "09:00", EndTime: "10:00", Capacity: 0}, false},
		{"start equals end", TimeSlot{StartTime: "09:00", EndTime: "09:00", Capacity: 1}, false},
		{"start after end", TimeSlot{StartTime: "10:00", EndTime: "09:00", Capacity: 1}, false},
		{"invalid time", TimeSlot{StartTime: "morning", EndTime: "10:00", Capacity: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.IsValid())
		})
	}
}

func TestTimeSlot_HasStarted(t *testing.T) {
	slot := &TimeSlot{StartTime: "10:00", EndTime: "11:00", Capacity: 1}

	assert.False(t, slot.HasStarted("09:59"))
	// Start minute counts as started
	assert.True(t, slot.HasStarted("10:00"))
	assert.True(t, slot.HasStarted("10:01"))
	assert.True(t, slot.HasStarted("12:00"))
}
