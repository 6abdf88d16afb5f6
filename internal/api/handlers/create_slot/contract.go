package create_slot

import (
	"context"

	slotModels "github.com/m04kA/SMC-SchedulerService/internal/service/slots/models"
)

type SlotService interface {
	Create(ctx context.Context, req *slotModels.CreateSlotRequest) (*slotModels.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
