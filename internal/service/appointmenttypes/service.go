package appointmenttypes

import (
	"context"
	"errors"
	"fmt"

	typeRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/appointmenttype"
	"github.com/m04kA/SMC-SchedulerService/internal/service/appointmenttypes/models"
)

// Service сервис каталога типов записей (read-only)
type Service struct {
	typeRepo AppointmentTypeRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса типов записей
func NewService(typeRepo AppointmentTypeRepository, logger Logger) *Service {
	return &Service{
		typeRepo: typeRepo,
		logger:   logger,
	}
}

// GetByID получает тип записи по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentTypeResponse, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	appointmentType, err := s.typeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, typeRepo.ErrTypeNotFound) {
			s.logger.Warn("GetByID: appointment type id=%d not found", id)
			return nil, ErrTypeNotFound
		}
		s.logger.Error("GetByID: repository error for type id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentType(appointmentType), nil
}

// List получает все типы записей
func (s *Service) List(ctx context.Context) (*models.AppointmentTypeListResponse, error) {
	types, err := s.typeRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointment types", len(types))
	return models.FromDomainAppointmentTypeList(types), nil
}
