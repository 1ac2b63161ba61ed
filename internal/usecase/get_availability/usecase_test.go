package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoval8/ClassBookingService/internal/domain"
	catalogRepo "github.com/dkoval8/ClassBookingService/internal/infra/storage/catalog"
)

type fakeCatalogRepository struct {
	getClassAssignmentFunc  func(ctx context.Context, id int64) (*domain.ClassAssignment, error)
	listSlotAssignmentsFunc func(ctx context.Context, classAssignmentID int64) ([]*domain.SlotAssignment, error)
}

func (f *fakeCatalogRepository) GetClassAssignment(ctx context.Context, id int64) (*domain.ClassAssignment, error) {
	return f.getClassAssignmentFunc(ctx, id)
}

func (f *fakeCatalogRepository) ListSlotAssignments(ctx context.Context, classAssignmentID int64) ([]*domain.SlotAssignment, error) {
	return f.listSlotAssignmentsFunc(ctx, classAssignmentID)
}

type fakeBookingRepository struct {
	countForAssignmentsFunc func(ctx context.Context, slotAssignmentIDs []int64, date time.Time) (map[int64]int, error)
}

func (f *fakeBookingRepository) CountForAssignments(ctx context.Context, slotAssignmentIDs []int64, date time.Time) (map[int64]int, error) {
	return f.countForAssignmentsFunc(ctx, slotAssignmentIDs, date)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func openCalendar() *domain.HolidayCalendar {
	return &domain.HolidayCalendar{ID: 1}
}

func testAssignment(calendar *domain.HolidayCalendar) *domain.ClassAssignment {
	return &domain.ClassAssignment{
		ID:                10,
		InstructorID:      1,
		ClassID:           2,
		HolidayCalendarID: calendar.ID,
		ClassTitle:        "Yoga",
		InstructorName:    "Anna",
		Calendar:          calendar,
	}
}

func testSlotAssignments() []*domain.SlotAssignment {
	return []*domain.SlotAssignment{
		{
			ID:                101,
			ClassAssignmentID: 10,
			TimeSlotID:        1,
			Slot:              &domain.TimeSlot{ID: 1, StartTime: "09:00", EndTime: "10:00", Capacity: 3},
		},
		{
			ID:                102,
			ClassAssignmentID: 10,
			TimeSlotID:        2,
			Slot:              &domain.TimeSlot{ID: 2, StartTime: "12:00", EndTime: "13:00", Capacity: 2},
		},
		{
			ID:                103,
			ClassAssignmentID: 10,
			TimeSlotID:        3,
			Slot:              &domain.TimeSlot{ID: 3, StartTime: "18:00", EndTime: "19:00", Capacity: 1},
		},
	}
}

func newTestUseCase(
	catalog *fakeCatalogRepository,
	booking *fakeBookingRepository,
	now time.Time,
) *UseCase {
	uc := NewUseCase(catalog, booking, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_ReturnsAnnotatedSlotsSortedByStartTime(t *testing.T) {
	// Tuesday 2026-09-01, request for a future date
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	catalog := &fakeCatalogRepository{
		getClassAssignmentFunc: func(ctx context.Context, id int64) (*domain.ClassAssignment, error) {
			return testAssignment(openCalendar()), nil
		},
		listSlotAssignmentsFunc: func(ctx context.Context, classAssignmentID int64) ([]*domain.SlotAssignment, error) {
			return testSlotAssignments(), nil
		},
	}
	booking := &fakeBookingRepository{
		countForAssignmentsFunc: func(ctx context.Context, ids []int64, date time.Time) (map[int64]int, error) {
			assert.ElementsMatch(t, []int64{101, 102, 103}, ids)
			return map[int64]int{101: 1}, nil
		},
	}

	uc := newTestUseCase(catalog, booking, now)

	resp, err := uc.Execute(context.Background(), &Request{ClassAssignmentID: 10, Date: date})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	assert.Equal(t, int64(101), resp.Slots[0].SlotAssignmentID)
	assert.Equal(t, 2, resp.Slots[0].AvailableSpots)
	assert.Equal(t, int64(102), resp.Slots[1].SlotAssignmentID)
	assert.Equal(t, 2, resp.Slots[1].AvailableSpots)
	assert.Equal(t, int64(103), resp.Slots[2].SlotAssignmentID)
	assert.Equal(t, 1, resp.Slots[2].AvailableSpots)
}

func TestExecute_FullSlotExcludedUntilCountDrops(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	counts := map[int64]int{103: 1} // slot 103 has capacity 1

	catalog := &fakeCatalogRepository{
		getClassAssignmentFunc: func(ctx context.Context, id int64) (*domain.ClassAssignment, error) {
			return testAssignment(openCalendar()), nil
		},
		listSlotAssignmentsFunc: func(ctx context.Context, classAssignmentID int64) ([]*domain.SlotAssignment, error) {
			return testSlotAssignments(), nil
		},
	}
	booking := &fakeBookingRepository{
		countForAssignmentsFunc: func(ctx context.Context, ids []int64, date time.Time) (map[int64]int, error) {
			return counts, nil
		},
	}

	uc := newTestUseCase(catalog, booking, now)
	req := &Request{ClassAssignmentID: 10, Date: date}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	for _, s := range resp.Slots {
		assert.NotEqual(t, int64(103), s.SlotAssignmentID)
	}
	assert.Len(t, resp.Slots, 2)

	// Booking cancelled elsewhere, slot reappears
	counts = map[int64]int{}
	resp, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 3)
}

func TestExecute_SameDayExcludesStartedSlots(t *testing.T) {
	// 12:00 sharp: the 09:00 slot has started, the 12:00 slot starts
	// right now and counts as started too, only 18:00 remains
	now := time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	catalog := &fakeCatalogRepository{
		getClassAssignmentFunc: func(ctx context.Context, id int64) (*domain.ClassAssignment, error) {
			return testAssignment(openCalendar()), nil
		},
		listSlotAssignmentsFunc: func(ctx context.Context, classAssignmentID int64) ([]*domain.SlotAssignment, error) {
			return testSlotAssignments(), nil
		},
	}
	booking := &fakeBookingRepository{
		countForAssignmentsFunc: func(ctx context.Context, ids []int64, date time.Time) (map[int64]int, error) {
			return map[int64]int{}, nil
		},
	}

	uc := newTestUseCase(catalog, booking, now)

	resp, err := uc.Execute(context.Background(), &Request{ClassAssignmentID: 10, Date: date})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, int64(103), resp.Slots[0].SlotAssignmentID)
}

func TestExecute_FutureDateKeepsMorningSlots(t *testing.T) {
	// Same wall clock as the same-day test, but the date is tomorrow
	now := time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	catalog := &fakeCatalogRepository{
		getClassAssignmentFunc: func(ctx context.Context, id int64) (*domain.ClassAssignment, error) {
			return testAssignment(openCalendar()), nil
		},
		listSlotAssignmentsFunc: func(ctx context.Context, classAssignmentID int64) ([]*domain.SlotAssignment, error) {
			return testSlotAssignments(), nil
		},
	}
	booking := &fakeBookingRepository{
		countForAssignmentsFunc: func(ctx context.Context, ids []int64, date time.Time) (map[int64]int, error) {
			return map[int64]int{}, nil
		},
	}

	uc := newTestUseCase(catalog, booking, now)

	resp, err := uc.Execute(context.Background(), &Request{ClassAssignmentID: 10, Date: date})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 3)
}

func TestExecute_PastDateReturnsEmptyList(t *testing.T) {
	now := time.Date(2026, 9, 3, 12, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	listCalled := false
	catalog := &fakeCatalogRepository{
		getClassAssignmentFunc: func(ctx context.Context, id int64) (*domain.ClassAssignment, error) {
			return testAssignment(openCalendar()), nil
		},
		listSlotAssignmentsFunc: func(ctx context.Context, classAssignmentID int64) ([]*domain.SlotAssignment, error) {
			listCalled = true
			return testSlotAssignments(), nil
		},
	}
	booking := &fakeBookingRepository{
		countForAssignmentsFunc: func(ctx context.Context, ids []int64, date time.Time) (map[int64]int, error) {
			return map[int64]int{}, nil
		},
	}

	uc := newTestUseCase(catalog, booking, now)

	resp, err := uc.Execute(context.Background(), &Request{ClassAssignmentID: 10, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.False(t, listCalled)
}

func TestExecute_HolidayReturnsEmptyList(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	// 2026-09-06 is a Sunday
	date := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

	calendar := openCalendar()
	calendar.SundayHoliday = true

	catalog := &fakeCatalogRepository{
		getClassAssignmentFunc: func(ctx context.Context, id int64) (*domain.ClassAssignment, error) {
			return testAssignment(calendar), nil
		},
		listSlotAssignmentsFunc: func(ctx context.Context, classAssignmentID int64) ([]*domain.SlotAssignment, error) {
			t.Fatal("slot assignments must not be loaded on a holiday")
			return nil, nil
		},
	}
	booking := &fakeBookingRepository{
		countForAssignmentsFunc: func(ctx context.Context, ids []int64, date time.Time) (map[int64]int, error) {
			return map[int64]int{}, nil
		},
	}

	uc := newTestUseCase(catalog, booking, now)

	resp, err := uc.Execute(context.Background(), &Request{ClassAssignmentID: 10, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, int64(10), resp.ClassAssignmentID)
}

func TestExecute_ClassAssignmentNotFound(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	catalog := &fakeCatalogRepository{
		getClassAssignmentFunc: func(ctx context.Context, id int64) (*domain.ClassAssignment, error) {
			return nil, catalogRepo.ErrClassAssignmentNotFound
		},
	}
	booking := &fakeBookingRepository{}

	uc := newTestUseCase(catalog, booking, now)

	_, err := uc.Execute(context.Background(), &Request{ClassAssignmentID: 999, Date: date})
	assert.ErrorIs(t, err, ErrClassAssignmentNotFound)
}

func TestExecute_RepositoryFailureMapsToInternal(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)

	catalog := &fakeCatalogRepository{
		getClassAssignmentFunc: func(ctx context.Context, id int64) (*domain.ClassAssignment, error) {
			return testAssignment(openCalendar()), nil
		},
		listSlotAssignmentsFunc: func(ctx context.Context, classAssignmentID int64) ([]*domain.SlotAssignment, error) {
			return nil, errors.New("connection refused")
		},
	}
	booking := &fakeBookingRepository{}

	uc := newTestUseCase(catalog, booking, now)

	_, err := uc.Execute(context.Background(), &Request{ClassAssignmentID: 10, Date: date})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr bool
	}{
		{
			name:    "valid",
			req:     &Request{ClassAssignmentID: 1, Date: time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)},
			wantErr: false,
		},
		{
			name:    "zero assignment id",
			req:     &Request{ClassAssignmentID: 0, Date: time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)},
			wantErr: true,
		},
		{
			name:    "negative assignment id",
			req:     &Request{ClassAssignmentID: -5, Date: time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)},
			wantErr: true,
		},
		{
			name:    "zero date",
			req:     &Request{ClassAssignmentID: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
