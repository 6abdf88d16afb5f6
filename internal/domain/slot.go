package domain

import "time"

// SlotStatus represents the status of an inventory slot
type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
)

// Slot represents a single unit of bookable host time
// Interval is half-open: [StartTime, EndTime), EndTime - StartTime is always
// exactly one slot granule
type Slot struct {
	ID        int64
	HostID    int64
	StartTime time.Time
	EndTime   time.Time
	Status    SlotStatus
	BookingID *int64 // установлен тогда и только тогда, когда Status == booked

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAvailable returns true if the slot can be claimed by a booking
func (s *Slot) IsAvailable() bool {
	return s.Status == SlotStatusAvailable
}

// IsBooked returns true if the slot is held by an active booking
func (s *Slot) IsBooked() bool {
	return s.Status == SlotStatusBooked
}

// DurationMinutes returns the slot length in minutes
func (s *Slot) DurationMinutes() int {
	return int(s.EndTime.Sub(s.StartTime) / time.Minute)
}

// Overlaps returns true if the slot interval intersects [start, end)
// Touching boundaries (end == other start) is not an overlap
func (s *Slot) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && s.EndTime.After(start)
}

// SlotsFilter фильтр для выборки слотов хоста
type SlotsFilter struct {
	HostID      int64       // Обязательный параметр
	WindowStart *time.Time  // Начало окна (опционально)
	WindowEnd   *time.Time  // Конец окна (опционально)
	Status      *SlotStatus // Фильтр по статусу (опционально)
}
