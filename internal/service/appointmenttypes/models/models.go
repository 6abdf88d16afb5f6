package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// AppointmentTypeResponse ответ с данными типа записи
type AppointmentTypeResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// AppointmentTypeListResponse ответ со списком типов записей
type AppointmentTypeListResponse struct {
	AppointmentTypes []AppointmentTypeResponse `json:"appointmentTypes"`
}

// FromDomainAppointmentType конвертирует domain модель в DTO
func FromDomainAppointmentType(t *domain.AppointmentType) *AppointmentTypeResponse {
	if t == nil {
		return nil
	}

	return &AppointmentTypeResponse{
		ID:              t.ID,
		Name:            t.Name,
		DurationMinutes: t.DurationMinutes,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// FromDomainAppointmentTypeList конвертирует список domain моделей в DTO
func FromDomainAppointmentTypeList(types []*domain.AppointmentType) *AppointmentTypeListResponse {
	resp := &AppointmentTypeListResponse{
		AppointmentTypes: make([]AppointmentTypeResponse, 0, len(types)),
	}

	for _, t := range types {
		if typeResp := FromDomainAppointmentType(t); typeResp != nil {
			resp.AppointmentTypes = append(resp.AppointmentTypes, *typeResp)
		}
	}

	return resp
}
