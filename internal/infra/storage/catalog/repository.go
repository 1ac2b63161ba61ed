package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/dkoval8/ClassBookingService/internal/domain"
	"github.com/dkoval8/ClassBookingService/pkg/dbmetrics"
	"github.com/dkoval8/ClassBookingService/pkg/psqlbuilder"
)

// Repository репозиторий справочных данных: назначения классов, назначения слотов,
// календари выходных. Справочник изменяется только административными операциями,
// движок бронирования читает его без блокировок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочника
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetClassAssignment получает назначение класса по ID вместе с календарем выходных,
// названием класса и именем инструктора
func (r *Repository) GetClassAssignment(ctx context.Context, id int64) (*domain.ClassAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := classAssignmentSelect().
		Where(squirrel.Eq{"ca.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetClassAssignment - build select query: %w", ErrBuildQuery, err)
	}

	assignment, err := scanClassAssignment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrClassAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetClassAssignment - scan class assignment: %w", ErrScanRow, err)
	}

	return assignment, nil
}

// ListClassAssignments получает все назначения классов, отсортированные по названию класса
func (r *Repository) ListClassAssignments(ctx context.Context) ([]*domain.ClassAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := classAssignmentSelect().
		OrderBy("c.title ASC, ca.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListClassAssignments - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListClassAssignments - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	assignments := make([]*domain.ClassAssignment, 0)
	for rows.Next() {
		assignment, err := scanClassAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListClassAssignments - scan row: %w", ErrScanRow, err)
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListClassAssignments - rows error: %w", ErrScanRow, err)
	}

	return assignments, nil
}

// ListSlotAssignments получает все назначения слотов для указанного назначения класса,
// отсортированные по времени начала слота
func (r *Repository) ListSlotAssignments(ctx context.Context, classAssignmentID int64) ([]*domain.SlotAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"sa.id",
		"sa.class_assignment_id",
		"sa.time_slot_id",
		"ts.start_time",
		"ts.end_time",
		"ts.capacity",
	).
		From("slot_assignments sa").
		Join("time_slots ts ON ts.id = sa.time_slot_id").
		Where(squirrel.Eq{"sa.class_assignment_id": classAssignmentID}).
		OrderBy("ts.start_time ASC, sa.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListSlotAssignments - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSlotAssignments - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	assignments := make([]*domain.SlotAssignment, 0)
	for rows.Next() {
		var sa domain.SlotAssignment
		var slot domain.TimeSlot

		err := rows.Scan(
			&sa.ID,
			&sa.ClassAssignmentID,
			&sa.TimeSlotID,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Capacity,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListSlotAssignments - scan row: %w", ErrScanRow, err)
		}

		slot.ID = sa.TimeSlotID
		sa.Slot = &slot
		assignments = append(assignments, &sa)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSlotAssignments - rows error: %w", ErrScanRow, err)
	}

	return assignments, nil
}

// GetSlotAssignment получает назначение слота по ID вместе со слотом и назначением
// класса (включая календарь выходных) - все, что нужно для проверок при коммите
func (r *Repository) GetSlotAssignment(ctx context.Context, id int64) (*domain.SlotAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"sa.id",
		"sa.class_assignment_id",
		"sa.time_slot_id",
		"ts.start_time",
		"ts.end_time",
		"ts.capacity",
		"h.id",
		"h.is_monday_holiday",
		"h.is_tuesday_holiday",
		"h.is_wednesday_holiday",
		"h.is_thursday_holiday",
		"h.is_friday_holiday",
		"h.is_saturday_holiday",
		"h.is_sunday_holiday",
	).
		From("slot_assignments sa").
		Join("time_slots ts ON ts.id = sa.time_slot_id").
		Join("class_assignments ca ON ca.id = sa.class_assignment_id").
		Join("holiday_calendars h ON h.id = ca.holiday_calendar_id").
		Where(squirrel.Eq{"sa.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotAssignment - build select query: %w", ErrBuildQuery, err)
	}

	var sa domain.SlotAssignment
	var slot domain.TimeSlot
	var calendar domain.HolidayCalendar

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&sa.ID,
		&sa.ClassAssignmentID,
		&sa.TimeSlotID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Capacity,
		&calendar.ID,
		&calendar.MondayHoliday,
		&calendar.TuesdayHoliday,
		&calendar.WednesdayHoliday,
		&calendar.ThursdayHoliday,
		&calendar.FridayHoliday,
		&calendar.SaturdayHoliday,
		&calendar.SundayHoliday,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSlotAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotAssignment - scan slot assignment: %w", ErrScanRow, err)
	}

	slot.ID = sa.TimeSlotID
	sa.Slot = &slot
	sa.Assignment = &domain.ClassAssignment{
		ID:                sa.ClassAssignmentID,
		HolidayCalendarID: calendar.ID,
		Calendar:          &calendar,
	}

	return &sa, nil
}

func classAssignmentSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"ca.id",
		"ca.instructor_id",
		"ca.class_id",
		"ca.holiday_calendar_id",
		"c.title",
		"i.name",
		"h.is_monday_holiday",
		"h.is_tuesday_holiday",
		"h.is_wednesday_holiday",
		"h.is_thursday_holiday",
		"h.is_friday_holiday",
		"h.is_saturday_holiday",
		"h.is_sunday_holiday",
	).
		From("class_assignments ca").
		Join("classes c ON c.id = ca.class_id").
		Join("instructors i ON i.id = ca.instructor_id").
		Join("holiday_calendars h ON h.id = ca.holiday_calendar_id")
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClassAssignment(row rowScanner) (*domain.ClassAssignment, error) {
	var assignment domain.ClassAssignment
	var calendar domain.HolidayCalendar

	err := row.Scan(
		&assignment.ID,
		&assignment.InstructorID,
		&assignment.ClassID,
		&assignment.HolidayCalendarID,
		&assignment.ClassTitle,
		&assignment.InstructorName,
		&calendar.MondayHoliday,
		&calendar.TuesdayHoliday,
		&calendar.WednesdayHoliday,
		&calendar.ThursdayHoliday,
		&calendar.FridayHoliday,
		&calendar.SaturdayHoliday,
		&calendar.SundayHoliday,
	)
	if err != nil {
		return nil, err
	}

	calendar.ID = assignment.HolidayCalendarID
	assignment.Calendar = &calendar

	return &assignment, nil
}
