package get_host_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulerService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulerService/internal/service/bookings"
)

const (
	msgInvalidHostID = "некорректный ID хоста"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/hosts/{hostId}/bookings
// Query params: startDate, endDate (YYYY-MM-DD), status, includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем hostId из URL
	vars := mux.Vars(r)
	hostIDStr := vars["hostId"]

	hostID, err := strconv.ParseInt(hostIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/bookings - Invalid host ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHostID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /hosts/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем опциональные query параметры
	startDateStr := r.URL.Query().Get("startDate")
	endDateStr := r.URL.Query().Get("endDate")
	statusStr := r.URL.Query().Get("status")
	includeCancelledStr := r.URL.Query().Get("includeCancelled")

	// Формируем запрос к сервису
	serviceReq, err := ToServiceRequest(hostID, startDateStr, endDateStr, statusStr, includeCancelledStr)
	if err != nil {
		h.logger.Warn("GET /hosts/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Получаем бронирования хоста
	result, err := h.service.GetHostBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /hosts/{id}/bookings - Invalid input: host_id=%d, error=%v", hostID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /hosts/{id}/bookings - Failed to get bookings: host_id=%d, error=%v", hostID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /hosts/{id}/bookings - Bookings retrieved successfully: host_id=%d, user_id=%d, count=%d",
		hostID, userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
