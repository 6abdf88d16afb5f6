package list_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulerService/internal/service/slots"
)

const (
	msgInvalidHostID = "некорректный ID хоста"
	msgInvalidParams = "некорректные параметры запроса"
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

// Handle GET /api/v1/hosts/{hostId}/slots
// Query params: windowStart, windowEnd (RFC 3339), status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем hostId из URL
	vars := mux.Vars(r)
	hostIDStr := vars["hostId"]

	hostID, err := strconv.ParseInt(hostIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/slots - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	// Получаем опциональные query параметры
	windowStartStr := r.URL.Query().Get("windowStart")
	windowEndStr := r.URL.Query().Get("windowEnd")
	statusStr := r.URL.Query().Get("status")

	// Формируем запрос к сервису
	serviceReq, err := ToServiceRequest(hostID, windowStartStr, windowEndStr, statusStr)
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем слоты хоста
	result, err := h.service.List(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /hosts/{id}/slots - Invalid input: host_id=%d, error=%v", hostID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /hosts/{id}/slots - Failed to list slots: host_id=%d, error=%v", hostID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /hosts/{id}/slots - Slots retrieved successfully: host_id=%d, count=%d",
		hostID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
