package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Customer identifies who booked the appointment
// The scheduler treats these fields as opaque contact data
type Customer struct {
	Name    string
	Email   string
	Company *string
}

// Booking represents a confirmed reservation spanning one or more
// contiguous slots of a single host
type Booking struct {
	ID                int64
	Reference         uuid.UUID // внешний идентификатор для клиентов и уведомлений
	HostID            int64
	AppointmentTypeID int64
	StartTime         time.Time
	EndTime           time.Time
	Customer          Customer
	Status            BookingStatus

	// Denormalized appointment type data for history
	AppointmentTypeName string
	DurationMinutes     int

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Slots bound to the booking, ordered by start time
	// Populated by the allocator on create and by reads that join slots
	Slots []*Slot
}

// IsActive returns true if the booking still holds its slots
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can transition to cancelled
// Cancelled is terminal, so only confirmed bookings qualify
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// HostBookingsFilter фильтр для получения бронирований хоста
type HostBookingsFilter struct {
	HostID           int64          // Обязательный параметр
	StartDate        *time.Time     // Начало периода (опционально, если nil - без ограничения)
	EndDate          *time.Time     // Конец периода (опционально, если nil - без ограничения)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}
