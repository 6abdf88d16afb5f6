package appointmenttypes

import (
	"context"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// AppointmentTypeRepository интерфейс репозитория типов записей
type AppointmentTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AppointmentType, error)
	List(ctx context.Context) ([]*domain.AppointmentType, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
