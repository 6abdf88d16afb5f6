package get_host_bookings

import (
	"context"

	bookingModels "github.com/m04kA/SMC-SchedulerService/internal/service/bookings/models"
)

type BookingService interface {
	GetHostBookings(ctx context.Context, req *bookingModels.GetHostBookingsRequest) (*bookingModels.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
