package get_availability

import "errors"

var (
	// ErrClassAssignmentNotFound возвращается, когда назначение класса не найдено
	ErrClassAssignmentNotFound = errors.New("get_availability: class assignment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
