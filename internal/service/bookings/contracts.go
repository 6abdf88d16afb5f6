package bookings

import (
	"context"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByHostWithFilter(ctx context.Context, filter domain.HostBookingsFilter) ([]*domain.Booking, error)
	CancelConditional(ctx context.Context, id int64, reason *string) (bool, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.Slot, error)
	ReleaseByBooking(ctx context.Context, bookingID int64) (int64, error)
}

// NotifierClient интерфейс клиента NotificationService
type NotifierClient interface {
	BookingCancelled(ctx context.Context, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
