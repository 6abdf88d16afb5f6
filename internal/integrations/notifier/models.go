package notifier

import (
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// BookingEvent payload уведомления о событии бронирования
// NotificationService сам решает, какие каналы задействовать (email и т.д.)
type BookingEvent struct {
	BookingID           int64     `json:"bookingId"`
	Reference           string    `json:"reference"`
	HostID              int64     `json:"hostId"`
	AppointmentTypeName string    `json:"appointmentTypeName"`
	StartTime           time.Time `json:"startTime"`
	EndTime             time.Time `json:"endTime"`
	CustomerName        string    `json:"customerName"`
	CustomerEmail       string    `json:"customerEmail"`
	CustomerCompany     *string   `json:"customerCompany,omitempty"`
	CancellationReason  *string   `json:"cancellationReason,omitempty"`
}

// eventFromBooking собирает payload из доменной модели
func eventFromBooking(b *domain.Booking) BookingEvent {
	return BookingEvent{
		BookingID:           b.ID,
		Reference:           b.Reference.String(),
		HostID:              b.HostID,
		AppointmentTypeName: b.AppointmentTypeName,
		StartTime:           b.StartTime,
		EndTime:             b.EndTime,
		CustomerName:        b.Customer.Name,
		CustomerEmail:       b.Customer.Email,
		CustomerCompany:     b.Customer.Company,
		CancellationReason:  b.CancellationReason,
	}
}
