package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// Request модели

// CreateSlotRequest запрос на создание слота
type CreateSlotRequest struct {
	HostID    int64     `json:"hostId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// ListSlotsRequest запрос на получение слотов хоста
type ListSlotsRequest struct {
	HostID      int64      `json:"hostId"`
	WindowStart *time.Time `json:"windowStart,omitempty"` // Начало окна (опционально)
	WindowEnd   *time.Time `json:"windowEnd,omitempty"`   // Конец окна (опционально)
	Status      *string    `json:"status,omitempty"`      // Фильтр по статусу (опционально)
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID        int64     `json:"id"`
	HostID    int64     `json:"hostId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	BookingID *int64    `json:"bookingId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:        s.ID,
		HostID:    s.HostID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Status:    string(s.Status),
		BookingID: s.BookingID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}

	for _, slot := range slots {
		if slotResp := FromDomainSlot(slot); slotResp != nil {
			resp.Slots = append(resp.Slots, *slotResp)
		}
	}

	return resp
}

// ToDomainSlotStatus конвертирует строку в domain.SlotStatus с валидацией
func ToDomainSlotStatus(status string) (domain.SlotStatus, bool) {
	s := domain.SlotStatus(status)
	if s == domain.SlotStatusAvailable || s == domain.SlotStatusBooked {
		return s, true
	}
	return "", false
}
