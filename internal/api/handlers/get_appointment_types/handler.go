package get_appointment_types

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulerService/internal/api/handlers"
)

type Handler struct {
	service AppointmentTypeService
	logger  Logger
}

func NewHandler(service AppointmentTypeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointment-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /appointment-types - Failed to list appointment types: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointment-types - Appointment types retrieved successfully: count=%d",
		len(result.AppointmentTypes))
	handlers.RespondJSON(w, http.StatusOK, result)
}
