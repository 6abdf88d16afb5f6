package domain

import "time"

// AppointmentType is external configuration consumed by the scheduler
// It supplies the required meeting duration; the scheduler never mutates it
type AppointmentType struct {
	ID              int64
	Name            string
	DurationMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequiredSlotCount returns how many contiguous slots of the given
// granularity a booking of this type needs: ceil(duration / granularity)
func (t *AppointmentType) RequiredSlotCount(granularityMinutes int) int {
	if granularityMinutes <= 0 {
		return 0
	}
	return (t.DurationMinutes + granularityMinutes - 1) / granularityMinutes
}
