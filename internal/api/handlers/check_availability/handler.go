package check_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-SchedulerService/internal/usecase/check_availability"
)

const (
	msgInvalidHostID      = "некорректный ID хоста"
	msgInvalidTypeID      = "некорректный ID типа встречи"
	msgMissingTypeID      = "ID типа встречи обязателен"
	msgMissingWindowStart = "начало окна обязательно"
	msgMissingWindowEnd   = "конец окна обязателен"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgTypeNotFound       = "тип встречи не найден"
	msgInvalidParams      = "некорректные параметры запроса"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/hosts/{hostId}/availability
// Query params: windowStart, windowEnd (RFC 3339, required), appointmentTypeId (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем hostId из URL
	vars := mux.Vars(r)
	hostIDStr := vars["hostId"]

	hostID, err := strconv.ParseInt(hostIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/availability - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	// Извлекаем appointmentTypeId из query параметров
	typeIDStr := r.URL.Query().Get("appointmentTypeId")
	if typeIDStr == "" {
		h.logger.Warn("GET /hosts/{id}/availability - Missing appointment type ID")
		handlers.RespondBadRequest(w, msgMissingTypeID)
		return
	}

	typeID, err := strconv.ParseInt(typeIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/availability - Invalid appointment type ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTypeID)
		return
	}

	// Извлекаем окно из query параметров
	windowStartStr := r.URL.Query().Get("windowStart")
	if windowStartStr == "" {
		h.logger.Warn("GET /hosts/{id}/availability - Missing window start")
		handlers.RespondBadRequest(w, msgMissingWindowStart)
		return
	}

	windowEndStr := r.URL.Query().Get("windowEnd")
	if windowEndStr == "" {
		h.logger.Warn("GET /hosts/{id}/availability - Missing window end")
		handlers.RespondBadRequest(w, msgMissingWindowEnd)
		return
	}

	// Формируем запрос к use case (с парсингом времени)
	useCaseReq, err := ToUseCaseRequest(hostID, windowStartStr, windowEndStr, typeID)
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/availability - Invalid time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrAppointmentTypeNotFound):
			h.logger.Warn("GET /hosts/{id}/availability - Appointment type not found: type_id=%d", typeID)
			handlers.RespondNotFound(w, msgTypeNotFound)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /hosts/{id}/availability - Invalid input: host_id=%d, error=%v", hostID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /hosts/{id}/availability - Failed to check availability: host_id=%d, error=%v",
				hostID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /hosts/{id}/availability - Availability checked: host_id=%d, available=%t, slots=%d",
		hostID, result.Available, len(result.SlotIDs))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
