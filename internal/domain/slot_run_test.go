package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

// makeRun строит цепочку 15-минутных слотов, начиная с start
func makeRun(t *testing.T, start string, count int) []*Slot {
	t.Helper()
	slots := make([]*Slot, 0, count)
	cursor := mustTime(t, start)
	for i := 0; i < count; i++ {
		slots = append(slots, &Slot{
			ID:        int64(i + 1),
			HostID:    1,
			StartTime: cursor,
			EndTime:   cursor.Add(15 * time.Minute),
			Status:    SlotStatusAvailable,
		})
		cursor = cursor.Add(15 * time.Minute)
	}
	return slots
}

func TestResolveSlotRun_WindowInsideRun(t *testing.T) {
	// Хост открыл 09:00-10:00 четырьмя слотами по 15 минут,
	// запрошено окно 09:15-09:45 (30-минутная встреча, 2 слота)
	slots := makeRun(t, "2026-09-14T09:00:00Z", 4)

	resolution := ResolveSlotRun(slots[1:],
		mustTime(t, "2026-09-14T09:15:00Z"),
		mustTime(t, "2026-09-14T09:45:00Z"),
		2,
	)

	require.True(t, resolution.Available)
	assert.Equal(t, []int64{2, 3}, resolution.SlotIDs)
	assert.Empty(t, resolution.Reason)
}

func TestResolveSlotRun_ExactWindow(t *testing.T) {
	slots := makeRun(t, "2026-09-14T09:00:00Z", 2)

	resolution := ResolveSlotRun(slots,
		mustTime(t, "2026-09-14T09:00:00Z"),
		mustTime(t, "2026-09-14T09:30:00Z"),
		2,
	)

	require.True(t, resolution.Available)
	assert.Equal(t, []int64{1, 2}, resolution.SlotIDs)
}

func TestResolveSlotRun_SingleSlot(t *testing.T) {
	slots := makeRun(t, "2026-09-14T09:00:00Z", 1)

	resolution := ResolveSlotRun(slots,
		mustTime(t, "2026-09-14T09:00:00Z"),
		mustTime(t, "2026-09-14T09:15:00Z"),
		1,
	)

	require.True(t, resolution.Available)
	assert.Equal(t, []int64{1}, resolution.SlotIDs)
}

func TestResolveSlotRun_NoSlotCoversWindowStart(t *testing.T) {
	// Слоты начинаются позже начала окна
	slots := makeRun(t, "2026-09-14T09:15:00Z", 2)

	resolution := ResolveSlotRun(slots,
		mustTime(t, "2026-09-14T09:00:00Z"),
		mustTime(t, "2026-09-14T09:30:00Z"),
		2,
	)

	require.False(t, resolution.Available)
	assert.Contains(t, resolution.Reason, "no available slot covers window start")
}

func TestResolveSlotRun_GapInMiddle(t *testing.T) {
	// 09:00-09:15 и 09:30-09:45: дыра между 09:15 и 09:30
	first := makeRun(t, "2026-09-14T09:00:00Z", 1)
	second := makeRun(t, "2026-09-14T09:30:00Z", 1)
	second[0].ID = 2
	slots := append(first, second...)

	resolution := ResolveSlotRun(slots,
		mustTime(t, "2026-09-14T09:00:00Z"),
		mustTime(t, "2026-09-14T09:45:00Z"),
		3,
	)

	require.False(t, resolution.Available)
	assert.Contains(t, resolution.Reason, "gap between")
}

func TestResolveSlotRun_InsufficientCoverage(t *testing.T) {
	// Слоты заканчиваются в 09:30, окно - в 10:00
	slots := makeRun(t, "2026-09-14T09:00:00Z", 2)

	resolution := ResolveSlotRun(slots,
		mustTime(t, "2026-09-14T09:00:00Z"),
		mustTime(t, "2026-09-14T10:00:00Z"),
		4,
	)

	require.False(t, resolution.Available)
	assert.Contains(t, resolution.Reason, "insufficient coverage")
}

func TestResolveSlotRun_EmptySlots(t *testing.T) {
	resolution := ResolveSlotRun(nil,
		mustTime(t, "2026-09-14T09:00:00Z"),
		mustTime(t, "2026-09-14T09:30:00Z"),
		2,
	)

	require.False(t, resolution.Available)
	assert.Contains(t, resolution.Reason, "no available slot covers window start")
}

func TestResolveSlotRun_InvalidWindow(t *testing.T) {
	slots := makeRun(t, "2026-09-14T09:00:00Z", 2)

	resolution := ResolveSlotRun(slots,
		mustTime(t, "2026-09-14T09:30:00Z"),
		mustTime(t, "2026-09-14T09:00:00Z"),
		2,
	)

	require.False(t, resolution.Available)
	assert.Equal(t, "invalid window", resolution.Reason)
}

func TestResolveSlotRun_AdjacentDayBoundary(t *testing.T) {
	// Цепочка через полночь остаётся непрерывной
	slots := makeRun(t, "2026-09-14T23:45:00Z", 2)

	resolution := ResolveSlotRun(slots,
		mustTime(t, "2026-09-14T23:45:00Z"),
		mustTime(t, "2026-09-15T00:15:00Z"),
		2,
	)

	require.True(t, resolution.Available)
	assert.Equal(t, []int64{1, 2}, resolution.SlotIDs)
}

func TestVerifyContiguous(t *testing.T) {
	contiguous := makeRun(t, "2026-09-14T09:00:00Z", 3)
	assert.True(t, VerifyContiguous(contiguous))

	withGap := []*Slot{contiguous[0], contiguous[2]}
	assert.False(t, VerifyContiguous(withGap))

	assert.True(t, VerifyContiguous(nil))
	assert.True(t, VerifyContiguous(contiguous[:1]))
}
