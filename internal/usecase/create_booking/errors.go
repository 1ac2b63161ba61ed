package create_booking

import "errors"

var (
	// ErrSlotAssignmentNotFound возвращается, когда назначение слота не существует
	// или не предлагается на запрошенную дату (выходной день календаря)
	ErrSlotAssignmentNotFound = errors.New("create_booking: slot assignment not found")

	// ErrPastDate возвращается, когда дата бронирования раньше сегодняшней
	ErrPastDate = errors.New("create_booking: booking date is in the past")

	// ErrPastSlot возвращается, когда бронирование на сегодня, а слот уже начался
	ErrPastSlot = errors.New("create_booking: slot has already started today")

	// ErrDuplicateBooking возвращается, когда клиент уже бронировал этот слот на эту дату
	ErrDuplicateBooking = errors.New("create_booking: booking already exists")

	// ErrCapacityExceeded возвращается, когда все места слота на эту дату заняты
	ErrCapacityExceeded = errors.New("create_booking: slot capacity exceeded")

	// ErrClientUpsert возвращается, когда не удалось разрешить идентичность клиента
	ErrClientUpsert = errors.New("create_booking: failed to resolve client")

	// ErrBusy возвращается, когда коммит не смог сериализоваться за отведенный
	// бюджет повторов; вызывающая сторона может повторить запрос
	ErrBusy = errors.New("create_booking: booking commit is busy, try again")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
