package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotOverlaps(t *testing.T) {
	base := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)
	slot := &Slot{
		StartTime: base,
		EndTime:   base.Add(15 * time.Minute),
	}

	// Полуинтервалы: соприкосновение границами - не пересечение
	assert.False(t, slot.Overlaps(base.Add(-15*time.Minute), base))
	assert.False(t, slot.Overlaps(base.Add(15*time.Minute), base.Add(30*time.Minute)))

	assert.True(t, slot.Overlaps(base, base.Add(15*time.Minute)))
	assert.True(t, slot.Overlaps(base.Add(-5*time.Minute), base.Add(5*time.Minute)))
	assert.True(t, slot.Overlaps(base.Add(10*time.Minute), base.Add(20*time.Minute)))
	assert.True(t, slot.Overlaps(base.Add(-5*time.Minute), base.Add(20*time.Minute)))
}

func TestSlotPredicates(t *testing.T) {
	slot := &Slot{Status: SlotStatusAvailable}
	assert.True(t, slot.IsAvailable())
	assert.False(t, slot.IsBooked())

	slot.Status = SlotStatusBooked
	assert.False(t, slot.IsAvailable())
	assert.True(t, slot.IsBooked())
}

func TestBookingPredicates(t *testing.T) {
	booking := &Booking{Status: StatusConfirmed}
	assert.True(t, booking.IsActive())
	assert.False(t, booking.IsCancelled())
	assert.True(t, booking.CanBeCancelled())

	booking.Status = StatusCancelled
	assert.False(t, booking.IsActive())
	assert.True(t, booking.IsCancelled())
	assert.False(t, booking.CanBeCancelled())
}

func TestRequiredSlotCount(t *testing.T) {
	tests := []struct {
		name            string
		durationMinutes int
		granularity     int
		want            int
	}{
		{"exact single", 15, 15, 1},
		{"exact double", 30, 15, 2},
		{"hour at quarter granularity", 60, 15, 4},
		{"rounds up", 50, 15, 4},
		{"coarse granularity", 45, 30, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appointmentType := &AppointmentType{DurationMinutes: tt.durationMinutes}
			assert.Equal(t, tt.want, appointmentType.RequiredSlotCount(tt.granularity))
		})
	}
}
