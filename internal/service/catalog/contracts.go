package catalog

import (
	"context"

	"github.com/dkoval8/ClassBookingService/internal/domain"
)

// CatalogRepository интерфейс репозитория справочника
type CatalogRepository interface {
	ListClassAssignments(ctx context.Context) ([]*domain.ClassAssignment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
