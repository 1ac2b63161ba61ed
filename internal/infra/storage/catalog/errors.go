package catalog

import "errors"

var (
	// ErrClassAssignmentNotFound возвращается, когда назначение класса не найдено
	ErrClassAssignmentNotFound = errors.New("catalog.repository: class assignment not found")

	// ErrSlotAssignmentNotFound возвращается, когда назначение слота не найдено
	ErrSlotAssignmentNotFound = errors.New("catalog.repository: slot assignment not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
