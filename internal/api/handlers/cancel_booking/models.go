package cancel_booking

import (
	bookingModels "github.com/m04kA/SMC-SchedulerService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
// Тело запроса опционально: отмена без причины допустима
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest() *bookingModels.CancelBookingRequest {
	return &bookingModels.CancelBookingRequest{
		Reason: r.Reason,
	}
}
