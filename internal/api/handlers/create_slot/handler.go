package create_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulerService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulerService/internal/service/slots"
)

const (
	msgInvalidHostID      = "некорректный ID хоста"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotOverlap        = "слот пересекается с существующим слотом хоста"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/hosts/{hostId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем hostId из URL
	vars := mux.Vars(r)
	hostIDStr := vars["hostId"]

	hostID, err := strconv.ParseInt(hostIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /hosts/{id}/slots - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /hosts/{id}/slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /hosts/{id}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем в модель сервиса (с парсингом времени)
	serviceReq, err := req.ToServiceRequest(hostID)
	if err != nil {
		h.logger.Warn("POST /hosts/{id}/slots - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Создаем слот
	result, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotOverlap):
			h.logger.Warn("POST /hosts/{id}/slots - Slot overlap: host_id=%d, user_id=%d", hostID, userID)
			handlers.RespondConflict(w, msgSlotOverlap)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("POST /hosts/{id}/slots - Invalid input: host_id=%d, error=%v", hostID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /hosts/{id}/slots - Failed to create slot: host_id=%d, error=%v", hostID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /hosts/{id}/slots - Slot created successfully: slot_id=%d, host_id=%d, user_id=%d",
		result.ID, hostID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
