package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	typeRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/appointmenttype"
	slotRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SchedulerService/pkg/ptr"
)

// Таймаут на отправку уведомления после коммита
// Уведомление живёт дольше HTTP-запроса, поэтому контекст свой
const notifyTimeout = 10 * time.Second

// UseCase use case создания бронирования
//
// Единственное место в сервисе, где создаются бронирования. Владеет
// протоколом "создать бронирование + захватить слоты" внутри одной
// сериализуемой транзакции
type UseCase struct {
	bookingRepo        BookingRepository
	slotRepo           SlotRepository
	typeRepo           AppointmentTypeRepository
	notifier           NotifierClient
	txManager          TransactionManager
	timeProvider       TimeProvider
	granularityMinutes int
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	typeRepo AppointmentTypeRepository,
	notifier NotifierClient,
	txManager TransactionManager,
	granularityMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:        bookingRepo,
		slotRepo:           slotRepo,
		typeRepo:           typeRepo,
		notifier:           notifier,
		txManager:          txManager,
		timeProvider:       &RealTimeProvider{},
		granularityMinutes: granularityMinutes,
		logger:             logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Проверка доступности и захват слотов выполняются в одной сериализуемой
// транзакции; захват - условное массовое обновление с проверкой количества
// затронутых строк. Бронирование становится видимым только вместе со всеми
// своими слотами в статусе booked - частичных состояний не существует
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: host=%d, window=[%s, %s), type=%d",
		req.HostID, req.WindowStart.Format(domain.TimeFormat), req.WindowEnd.Format(domain.TimeFormat),
		req.AppointmentTypeID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем тип встречи (он задаёт требуемое количество слотов)
	appointmentType, err := uc.typeRepo.GetByID(ctx, req.AppointmentTypeID)
	if err != nil {
		if errors.Is(err, typeRepo.ErrTypeNotFound) {
			uc.logger.Warn("CreateBooking: appointment type id=%d not found", req.AppointmentTypeID)
			return nil, ErrAppointmentTypeNotFound
		}
		uc.logger.Error("CreateBooking: failed to get appointment type id=%d: %v", req.AppointmentTypeID, err)
		return nil, fmt.Errorf("%w: failed to get appointment type: %v", ErrInternal, err)
	}

	// 4. Валидация окна против типа встречи
	if err := validateWindow(req, appointmentType, now); err != nil {
		uc.logger.Warn("CreateBooking: window validation failed: %v", err)
		return nil, err
	}

	requiredCount := appointmentType.RequiredSlotCount(uc.granularityMinutes)

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Читаем свободные слоты, пересекающие окно (отсортированы по start_time)
		slots, err := uc.slotRepo.List(txCtx, domain.SlotsFilter{
			HostID:      req.HostID,
			WindowStart: &req.WindowStart,
			WindowEnd:   &req.WindowEnd,
			Status:      ptr.Ptr(domain.SlotStatusAvailable),
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list slots: %v", err)
			return fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
		}

		// 5.2. Проверяем непрерывное покрытие окна
		// Результат - подсказка: авторитетная проверка ниже, в условном обновлении
		resolution := domain.ResolveSlotRun(slots, req.WindowStart, req.WindowEnd, requiredCount)
		if !resolution.Available {
			uc.logger.Warn("CreateBooking: window not coverable for host=%d: %s", req.HostID, resolution.Reason)
			return fmt.Errorf("%w: %s", ErrInsufficientAvailability, resolution.Reason)
		}

		// 5.3. Создаем бронирование с денормализацией типа встречи
		booking := &domain.Booking{
			Reference:         uuid.New(),
			HostID:            req.HostID,
			AppointmentTypeID: req.AppointmentTypeID,
			StartTime:         req.WindowStart,
			EndTime:           req.WindowEnd,
			Customer:          req.Customer,
			Status:            domain.StatusConfirmed,
			// Денормализация данных типа встречи
			AppointmentTypeName: appointmentType.Name,
			DurationMinutes:     appointmentType.DurationMinutes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 5.4. Условно захватываем ВСЕ кандидатные слоты одним запросом
		// Если хоть один был занят конкурентно - вся транзакция откатывается,
		// включая только что созданную строку бронирования
		err = uc.slotRepo.UpdateStatus(txCtx, resolution.SlotIDs,
			domain.SlotStatusAvailable, domain.SlotStatusBooked, &created.ID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrConflict) {
				uc.logger.Warn("CreateBooking: lost slot race for host=%d, window=[%s, %s)",
					req.HostID, req.WindowStart.Format(domain.TimeFormat), req.WindowEnd.Format(domain.TimeFormat))
				return fmt.Errorf("%w: %v", ErrSlotConflict, err)
			}
			uc.logger.Error("CreateBooking: failed to claim slots: %v", err)
			return fmt.Errorf("%w: failed to claim slots: %v", ErrInternal, err)
		}

		// Привязываем слоты к результату (статусы уже переведены в booked)
		for _, s := range resolution.Slots {
			s.Status = domain.SlotStatusBooked
			s.BookingID = &created.ID
		}
		created.Slots = resolution.Slots

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d (reference=%s), slots=%d",
		result.ID, result.Reference, len(result.Slots))

	// 6. Уведомляем NotificationService после коммита (best-effort)
	// Ошибка доставки не может откатить уже закоммиченное бронирование
	go func(b *domain.Booking) {
		notifyCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := uc.notifier.BookingConfirmed(notifyCtx, b); err != nil {
			uc.logger.Error("CreateBooking: failed to notify about booking id=%d: %v", b.ID, err)
		}
	}(result)

	// Конвертируем в response
	slotIDs := make([]int64, len(result.Slots))
	for i, s := range result.Slots {
		slotIDs[i] = s.ID
	}

	return &Response{
		ID:                  result.ID,
		Reference:           result.Reference.String(),
		HostID:              result.HostID,
		AppointmentTypeID:   result.AppointmentTypeID,
		AppointmentTypeName: result.AppointmentTypeName,
		StartTime:           result.StartTime,
		EndTime:             result.EndTime,
		DurationMinutes:     result.DurationMinutes,
		Status:              string(result.Status),
		CustomerName:        result.Customer.Name,
		CustomerEmail:       result.Customer.Email,
		CustomerCompany:     result.Customer.Company,
		SlotIDs:             slotIDs,
		CreatedAt:           result.CreatedAt,
		UpdatedAt:           result.UpdatedAt,
	}, nil
}
