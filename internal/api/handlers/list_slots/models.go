package list_slots

import (
	"time"

	slotModels "github.com/m04kA/SMC-SchedulerService/internal/service/slots/models"
)

// ToServiceRequest собирает модель сервиса из path и query параметров
// Все query параметры опциональны; времена - RFC 3339
func ToServiceRequest(hostID int64, windowStartStr, windowEndStr, statusStr string) (*slotModels.ListSlotsRequest, error) {
	req := &slotModels.ListSlotsRequest{
		HostID: hostID,
	}

	if windowStartStr != "" {
		windowStart, err := time.Parse(time.RFC3339, windowStartStr)
		if err != nil {
			return nil, err
		}
		req.WindowStart = &windowStart
	}

	if windowEndStr != "" {
		windowEnd, err := time.Parse(time.RFC3339, windowEndStr)
		if err != nil {
			return nil, err
		}
		req.WindowEnd = &windowEnd
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
