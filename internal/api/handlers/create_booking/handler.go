package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SchedulerService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени окна, ожидается RFC 3339"
	msgTypeNotFound       = "тип встречи не найден"
	msgNotAvailable       = "запрошенное окно не покрывается свободными слотами"
	msgSlotConflict       = "слоты были заняты конкурирующим запросом, повторите попытку"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse window: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrAppointmentTypeNotFound):
			h.logger.Warn("POST /bookings - Appointment type not found: type_id=%d", req.AppointmentTypeID)
			handlers.RespondNotFound(w, msgTypeNotFound)

		case errors.Is(err, createBooking.ErrInsufficientAvailability):
			h.logger.Warn("POST /bookings - Insufficient availability: host_id=%d, window=[%s, %s)",
				req.HostID, req.WindowStart, req.WindowEnd)
			handlers.RespondConflict(w, msgNotAvailable)

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Lost slot race: host_id=%d, window=[%s, %s)",
				req.HostID, req.WindowStart, req.WindowEnd)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: host_id=%d, error=%v", req.HostID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: host_id=%d, error=%v", req.HostID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, reference=%s, host_id=%d, slots=%d",
		result.ID, result.Reference, req.HostID, len(result.SlotIDs))
	handlers.RespondJSON(w, http.StatusCreated, response)
}
