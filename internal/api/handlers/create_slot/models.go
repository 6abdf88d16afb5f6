package create_slot

import (
	"time"

	slotModels "github.com/m04kA/SMC-SchedulerService/internal/service/slots/models"
)

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	StartTime string `json:"startTime"` // RFC 3339, например "2026-09-14T09:00:00Z"
	EndTime   string `json:"endTime"`   // RFC 3339
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса (с парсингом времени)
func (r *CreateSlotRequest) ToServiceRequest(hostID int64) (*slotModels.CreateSlotRequest, error) {
	startTime, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &slotModels.CreateSlotRequest{
		HostID:    hostID,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}
