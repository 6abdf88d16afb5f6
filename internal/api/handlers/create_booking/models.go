package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	createBooking "github.com/m04kA/SMC-SchedulerService/internal/usecase/create_booking"
)

// CustomerPayload контактные данные клиента
type CustomerPayload struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Company *string `json:"company,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	HostID            int64           `json:"hostId"`
	AppointmentTypeID int64           `json:"appointmentTypeId"`
	WindowStart       string          `json:"windowStart"` // RFC 3339
	WindowEnd         string          `json:"windowEnd"`   // RFC 3339
	Customer          CustomerPayload `json:"customer"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                  int64   `json:"id"`
	Reference           string  `json:"reference"`
	HostID              int64   `json:"hostId"`
	AppointmentTypeID   int64   `json:"appointmentTypeId"`
	AppointmentTypeName string  `json:"appointmentTypeName"`
	StartTime           string  `json:"startTime"`
	EndTime             string  `json:"endTime"`
	DurationMinutes     int     `json:"durationMinutes"`
	Status              string  `json:"status"`
	CustomerName        string  `json:"customerName"`
	CustomerEmail       string  `json:"customerEmail"`
	CustomerCompany     *string `json:"customerCompany,omitempty"`
	SlotIDs             []int64 `json:"slotIds"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом времени)
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	windowStart, err := time.Parse(time.RFC3339, r.WindowStart)
	if err != nil {
		return nil, err
	}

	windowEnd, err := time.Parse(time.RFC3339, r.WindowEnd)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		HostID:            r.HostID,
		WindowStart:       windowStart,
		WindowEnd:         windowEnd,
		AppointmentTypeID: r.AppointmentTypeID,
		Customer: domain.Customer{
			Name:    r.Customer.Name,
			Email:   r.Customer.Email,
			Company: r.Customer.Company,
		},
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                  resp.ID,
		Reference:           resp.Reference,
		HostID:              resp.HostID,
		AppointmentTypeID:   resp.AppointmentTypeID,
		AppointmentTypeName: resp.AppointmentTypeName,
		StartTime:           resp.StartTime.Format(time.RFC3339),
		EndTime:             resp.EndTime.Format(time.RFC3339),
		DurationMinutes:     resp.DurationMinutes,
		Status:              resp.Status,
		CustomerName:        resp.CustomerName,
		CustomerEmail:       resp.CustomerEmail,
		CustomerCompany:     resp.CustomerCompany,
		SlotIDs:             resp.SlotIDs,
		CreatedAt:           resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           resp.UpdatedAt.Format(time.RFC3339),
	}
}
