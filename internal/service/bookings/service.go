package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulerService/internal/service/bookings/models"
)

// Таймаут на отправку уведомления после коммита
const notifyTimeout = 10 * time.Second

// Service сервис для чтения и отмены бронирований
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	notifier    NotifierClient
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	notifier NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID вместе с его слотами
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	slots, err := s.slotRepo.ListByBooking(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to list slots for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - failed to list slots: %v", ErrInternal, err)
	}
	booking.Slots = slots

	// Самопроверка: слоты активного бронирования обязаны образовывать
	// непрерывную цепочку. Нарушение означает, что захват слотов был
	// выполнен в обход условного обновления - это внутренняя авария
	if booking.IsActive() && !domain.VerifyContiguous(slots) {
		s.logger.Error("GetByID: CONTIGUITY VIOLATION for booking id=%d: slots are not contiguous", id)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d with %d slots", id, len(slots))
	return models.FromDomainBooking(booking), nil
}

// GetHostBookings получает бронирования хоста с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отменённых
func (s *Service) GetHostBookings(ctx context.Context, req *models.GetHostBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetHostBookings: fetching bookings for host=%d", req.HostID)

	if req.HostID <= 0 {
		return nil, fmt.Errorf("%w: hostID must be positive", ErrInvalidInput)
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetHostBookings: invalid filter for host=%d: %v", req.HostID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByHostWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetHostBookings: repository error for host=%d: %v", req.HostID, err)
		return nil, fmt.Errorf("%w: GetHostBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetHostBookings: successfully fetched %d bookings for host=%d", len(bookings), req.HostID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование и освобождает его слоты
//
// Операция идемпотентна: повторная отмена уже отменённого бронирования -
// успех без побочных эффектов. Это важно, потому что отмену могут
// одновременно инициировать пользователь и фоновая очистка; условный
// переход статуса выбирает единственного победителя, и только он
// освобождает слоты
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason exceeds %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	var won bool

	// Переход статуса и освобождение слотов - одна атомарная единица работы
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		won, err = s.bookingRepo.CancelConditional(txCtx, bookingID, req.Reason)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !won {
			// Бронирование уже отменено: слоты освободил победитель гонки,
			// повторять освобождение нельзя - слоты могли быть заняты заново
			return nil
		}

		released, err := s.slotRepo.ReleaseByBooking(txCtx, bookingID)
		if err != nil {
			return fmt.Errorf("%w: Cancel - failed to release slots: %v", ErrInternal, err)
		}

		s.logger.Info("Cancel: released %d slots for booking id=%d", released, bookingID)
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", bookingID, err)
		return err
	}

	if !won {
		s.logger.Info("Cancel: booking id=%d already cancelled, idempotent success", bookingID)
		return nil
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)

	// Уведомляем NotificationService после коммита (best-effort)
	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		booking, err := s.bookingRepo.GetByID(notifyCtx, bookingID)
		if err != nil {
			s.logger.Error("Cancel: failed to load booking id=%d for notification: %v", bookingID, err)
			return
		}

		if err := s.notifier.BookingCancelled(notifyCtx, booking); err != nil {
			s.logger.Error("Cancel: failed to notify about booking id=%d: %v", bookingID, err)
		}
	}()

	return nil
}
