package get_appointment_types

import (
	"context"

	typeModels "github.com/m04kA/SMC-SchedulerService/internal/service/appointmenttypes/models"
)

type AppointmentTypeService interface {
	List(ctx context.Context) (*typeModels.AppointmentTypeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
