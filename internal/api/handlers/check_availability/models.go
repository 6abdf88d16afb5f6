package check_availability

import (
	"time"

	checkAvailability "github.com/m04kA/SMC-SchedulerService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available         bool    `json:"available"`
	SlotIDs           []int64 `json:"slotIds,omitempty"`
	RequiredSlotCount int     `json:"requiredSlotCount"`
	Reason            string  `json:"reason,omitempty"`
}

// ToUseCaseRequest собирает модель use case из path и query параметров
func ToUseCaseRequest(hostID int64, windowStartStr, windowEndStr string, appointmentTypeID int64) (*checkAvailability.Request, error) {
	windowStart, err := time.Parse(time.RFC3339, windowStartStr)
	if err != nil {
		return nil, err
	}

	windowEnd, err := time.Parse(time.RFC3339, windowEndStr)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		HostID:            hostID,
		WindowStart:       windowStart,
		WindowEnd:         windowEnd,
		AppointmentTypeID: appointmentTypeID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Available:         resp.Available,
		SlotIDs:           resp.SlotIDs,
		RequiredSlotCount: resp.RequiredSlotCount,
		Reason:            resp.Reason,
	}
}
