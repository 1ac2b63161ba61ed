package catalog

import (
	"context"
	"fmt"

	"github.com/dkoval8/ClassBookingService/internal/domain"
)

// Service сервис чтения справочника назначений классов
// Справочник наполняется административными операциями вне этого сервиса
type Service struct {
	repo   CatalogRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса справочника
func NewService(repo CatalogRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListClassAssignments возвращает все назначения классов с названием класса
// и именем инструктора
func (s *Service) ListClassAssignments(ctx context.Context) ([]*domain.ClassAssignment, error) {
	assignments, err := s.repo.ListClassAssignments(ctx)
	if err != nil {
		s.logger.Error("ListClassAssignments: failed to list class assignments: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("ListClassAssignments: returned %d class assignments", len(assignments))
	return assignments, nil
}
