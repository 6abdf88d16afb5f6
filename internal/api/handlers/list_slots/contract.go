package list_slots

import (
	"context"

	slotModels "github.com/m04kA/SMC-SchedulerService/internal/service/slots/models"
)

type SlotService interface {
	List(ctx context.Context, req *slotModels.ListSlotsRequest) (*slotModels.SlotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
