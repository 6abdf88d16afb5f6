package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	slotRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SchedulerService/internal/service/slots/models"
)

// Service сервис управления инвентарём слотов хоста
type Service struct {
	slotRepo           SlotRepository
	granularityMinutes int
	logger             Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, granularityMinutes int, logger Logger) *Service {
	return &Service{
		slotRepo:           slotRepo,
		granularityMinutes: granularityMinutes,
		logger:             logger,
	}
}

// Create создает новый слот со статусом available
// Длительность слота обязана равняться грануле расписания; защита от
// пересечений обеспечивается хранилищем атомарно
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("CreateSlot: host=%d, interval=[%s, %s)",
		req.HostID, req.StartTime.Format(domain.TimeFormat), req.EndTime.Format(domain.TimeFormat))

	if err := s.validateCreate(req); err != nil {
		s.logger.Warn("CreateSlot: validation failed: %v", err)
		return nil, err
	}

	slot := &domain.Slot{
		HostID:    req.HostID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotOverlap) {
			s.logger.Warn("CreateSlot: overlap for host=%d at %s",
				req.HostID, req.StartTime.Format(domain.TimeFormat))
			return nil, ErrSlotOverlap
		}
		s.logger.Error("CreateSlot: repository error for host=%d: %v", req.HostID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSlot: successfully created slot id=%d for host=%d", created.ID, created.HostID)
	return models.FromDomainSlot(created), nil
}

// Delete удаляет слот
// Удаление занятого слота запрещено - сначала нужно отменить бронирование
func (s *Service) Delete(ctx context.Context, slotID int64) error {
	s.logger.Info("DeleteSlot: deleting slot id=%d", slotID)

	if err := s.slotRepo.Delete(ctx, slotID); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("DeleteSlot: slot id=%d not found", slotID)
			return ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotBooked):
			s.logger.Warn("DeleteSlot: slot id=%d is booked, cancel the booking first", slotID)
			return ErrSlotBooked
		default:
			s.logger.Error("DeleteSlot: repository error for slot id=%d: %v", slotID, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("DeleteSlot: successfully deleted slot id=%d", slotID)
	return nil
}

// List получает слоты хоста с фильтрацией по окну и статусу
// Повторный вызов перечитывает актуальное состояние
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("ListSlots: fetching slots for host=%d", req.HostID)

	if req.HostID <= 0 {
		return nil, fmt.Errorf("%w: hostID must be positive", ErrInvalidInput)
	}
	if req.WindowStart != nil && req.WindowEnd != nil && !req.WindowEnd.After(*req.WindowStart) {
		return nil, fmt.Errorf("%w: window end must be after window start", ErrInvalidInput)
	}

	filter := domain.SlotsFilter{
		HostID:      req.HostID,
		WindowStart: req.WindowStart,
		WindowEnd:   req.WindowEnd,
	}

	// Конвертируем статус из строки, если указан
	if req.Status != nil {
		status, ok := models.ToDomainSlotStatus(*req.Status)
		if !ok {
			s.logger.Warn("ListSlots: invalid status=%s for host=%d", *req.Status, req.HostID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListSlots: repository error for host=%d: %v", req.HostID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListSlots: successfully fetched %d slots for host=%d", len(slots), req.HostID)
	return models.FromDomainSlotList(slots), nil
}

// validateCreate проверяет интервал нового слота
func (s *Service) validateCreate(req *models.CreateSlotRequest) error {
	if req.HostID <= 0 {
		return fmt.Errorf("%w: hostID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if !req.EndTime.After(req.StartTime) {
		return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}

	// Слоты выровнены по целым минутам
	if req.StartTime.Second() != 0 || req.StartTime.Nanosecond() != 0 ||
		req.EndTime.Second() != 0 || req.EndTime.Nanosecond() != 0 {
		return fmt.Errorf("%w: slot boundaries must be aligned to whole minutes", ErrInvalidInput)
	}

	// Длительность слота фиксирована гранулой расписания
	durationMinutes := int(req.EndTime.Sub(req.StartTime) / time.Minute)
	if durationMinutes != s.granularityMinutes {
		return fmt.Errorf("%w: slot must be exactly %d minutes, got %d",
			ErrInvalidInput, s.granularityMinutes, durationMinutes)
	}

	return nil
}
