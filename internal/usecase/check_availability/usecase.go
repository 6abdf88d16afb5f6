package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	typeRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/appointmenttype"
	"github.com/m04kA/SMC-SchedulerService/pkg/ptr"
)

// UseCase use case проверки доступности окна для бронирования
//
// Проверка советующая: авторитетную гарантию даёт только условный захват
// слотов в create_booking. Здесь нет ни транзакции, ни блокировок
type UseCase struct {
	slotRepo           SlotRepository
	typeRepo           AppointmentTypeRepository
	granularityMinutes int
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	typeRepo AppointmentTypeRepository,
	granularityMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:           slotRepo,
		typeRepo:           typeRepo,
		granularityMinutes: granularityMinutes,
		logger:             logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: host=%d, window=[%s, %s), type=%d",
		req.HostID, req.WindowStart.Format(domain.TimeFormat), req.WindowEnd.Format(domain.TimeFormat),
		req.AppointmentTypeID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем тип встречи
	appointmentType, err := uc.typeRepo.GetByID(ctx, req.AppointmentTypeID)
	if err != nil {
		if errors.Is(err, typeRepo.ErrTypeNotFound) {
			uc.logger.Warn("CheckAvailability: appointment type id=%d not found", req.AppointmentTypeID)
			return nil, ErrAppointmentTypeNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get appointment type id=%d: %v", req.AppointmentTypeID, err)
		return nil, fmt.Errorf("%w: failed to get appointment type: %v", ErrInternal, err)
	}

	requiredCount := appointmentType.RequiredSlotCount(uc.granularityMinutes)

	// 3. Читаем свободные слоты, пересекающие окно
	slots, err := uc.slotRepo.List(ctx, domain.SlotsFilter{
		HostID:      req.HostID,
		WindowStart: &req.WindowStart,
		WindowEnd:   &req.WindowEnd,
		Status:      ptr.Ptr(domain.SlotStatusAvailable),
	})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to list slots: %v", err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 4. Проверяем непрерывное покрытие окна
	resolution := domain.ResolveSlotRun(slots, req.WindowStart, req.WindowEnd, requiredCount)

	if resolution.Available {
		uc.logger.Info("CheckAvailability: host=%d window available, %d slots", req.HostID, len(resolution.SlotIDs))
	} else {
		uc.logger.Info("CheckAvailability: host=%d window unavailable: %s", req.HostID, resolution.Reason)
	}

	return &Response{
		Available:         resolution.Available,
		SlotIDs:           resolution.SlotIDs,
		RequiredSlotCount: requiredCount,
		Reason:            resolution.Reason,
	}, nil
}
