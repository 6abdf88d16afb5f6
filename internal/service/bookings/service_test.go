package bookings

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SchedulerService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubTxManager struct{}

func (stubTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (stubTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeBookingStore повторяет семантику условной отмены репозитория:
// переход confirmed -> cancelled выполняется ровно один раз
type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
}

func newFakeBookingStore(bookings ...*domain.Booking) *fakeBookingStore {
	store := &fakeBookingStore{bookings: make(map[int64]*domain.Booking, len(bookings))}
	for _, b := range bookings {
		store.bookings[b.ID] = b
	}
	return store
}

func (f *fakeBookingStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingStore) GetByHostWithFilter(_ context.Context, filter domain.HostBookingsFilter) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.HostID != filter.HostID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.Status == nil && !filter.IncludeCancelled && b.Status == domain.StatusCancelled {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeBookingStore) CancelConditional(_ context.Context, id int64, reason *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, ok := f.bookings[id]
	if !ok {
		return false, bookingRepo.ErrBookingNotFound
	}
	if b.Status != domain.StatusConfirmed {
		return false, nil
	}

	now := time.Now()
	b.Status = domain.StatusCancelled
	b.CancellationReason = reason
	b.CancelledAt = &now
	b.UpdatedAt = now
	return true, nil
}

type fakeSlotStore struct {
	mu    sync.Mutex
	slots map[int64]*domain.Slot
}

func newFakeSlotStore(slots ...*domain.Slot) *fakeSlotStore {
	store := &fakeSlotStore{slots: make(map[int64]*domain.Slot, len(slots))}
	for _, s := range slots {
		store.slots[s.ID] = s
	}
	return store
}

func (f *fakeSlotStore) ListByBooking(_ context.Context, bookingID int64) ([]*domain.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.Slot
	for _, s := range f.slots {
		if s.BookingID != nil && *s.BookingID == bookingID {
			copied := *s
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeSlotStore) ReleaseByBooking(_ context.Context, bookingID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var released int64
	for _, s := range f.slots {
		if s.BookingID != nil && *s.BookingID == bookingID {
			s.Status = domain.SlotStatusAvailable
			s.BookingID = nil
			released++
		}
	}
	return released, nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	cancelled []int64
}

func (f *fakeNotifier) BookingCancelled(_ context.Context, booking *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, booking.ID)
	return nil
}

func confirmedBooking(id, hostID int64) *domain.Booking {
	start := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:                  id,
		Reference:           uuid.New(),
		HostID:              hostID,
		AppointmentTypeID:   10,
		AppointmentTypeName: "Консультация",
		StartTime:           start,
		EndTime:             start.Add(30 * time.Minute),
		DurationMinutes:     30,
		Status:              domain.StatusConfirmed,
		Customer: domain.Customer{
			Name:  "Анна Смирнова",
			Email: "anna@example.com",
		},
	}
}

func bookedSlots(bookingID int64) []*domain.Slot {
	start := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)
	return []*domain.Slot{
		{ID: 1, HostID: 1, StartTime: start, EndTime: start.Add(15 * time.Minute),
			Status: domain.SlotStatusBooked, BookingID: &bookingID},
		{ID: 2, HostID: 1, StartTime: start.Add(15 * time.Minute), EndTime: start.Add(30 * time.Minute),
			Status: domain.SlotStatusBooked, BookingID: &bookingID},
	}
}

func TestCancel_ReleasesSlots(t *testing.T) {
	bookingStore := newFakeBookingStore(confirmedBooking(1, 1))
	slotStore := newFakeSlotStore(bookedSlots(1)...)
	svc := NewService(bookingStore, slotStore, &fakeNotifier{}, stubTxManager{}, nopLogger{})

	reason := "клиент попросил перенести"
	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Reason: &reason})
	require.NoError(t, err)

	// Бронирование отменено, слоты вернулись в продажу
	booking, err := bookingStore.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, booking.Status)
	require.NotNil(t, booking.CancellationReason)
	assert.Equal(t, reason, *booking.CancellationReason)
	assert.NotNil(t, booking.CancelledAt)

	slots, err := slotStore.ListByBooking(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestCancel_Idempotent(t *testing.T) {
	bookingStore := newFakeBookingStore(confirmedBooking(1, 1))
	slotStore := newFakeSlotStore(bookedSlots(1)...)
	svc := NewService(bookingStore, slotStore, &fakeNotifier{}, stubTxManager{}, nopLogger{})

	require.NoError(t, svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{}))

	// Повторная отмена - успех без побочных эффектов
	require.NoError(t, svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{}))

	booking, err := bookingStore.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, booking.Status)
}

func TestCancel_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingStore(), newFakeSlotStore(), &fakeNotifier{}, stubTxManager{}, nopLogger{})

	err := svc.Cancel(context.Background(), 99, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ReasonTooLong(t *testing.T) {
	bookingStore := newFakeBookingStore(confirmedBooking(1, 1))
	svc := NewService(bookingStore, newFakeSlotStore(), &fakeNotifier{}, stubTxManager{}, nopLogger{})

	reason := strings.Repeat("x", domain.MaxCancellationReasonLength+1)
	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Reason: &reason})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID_WithSlots(t *testing.T) {
	bookingStore := newFakeBookingStore(confirmedBooking(1, 1))
	slotStore := newFakeSlotStore(bookedSlots(1)...)
	svc := NewService(bookingStore, slotStore, &fakeNotifier{}, stubTxManager{}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Len(t, resp.SlotIDs, 2)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingStore(), newFakeSlotStore(), &fakeNotifier{}, stubTxManager{}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetHostBookings_ExcludesCancelledByDefault(t *testing.T) {
	active := confirmedBooking(1, 1)
	cancelled := confirmedBooking(2, 1)
	cancelled.Status = domain.StatusCancelled
	otherHost := confirmedBooking(3, 2)

	bookingStore := newFakeBookingStore(active, cancelled, otherHost)
	svc := NewService(bookingStore, newFakeSlotStore(), &fakeNotifier{}, stubTxManager{}, nopLogger{})

	resp, err := svc.GetHostBookings(context.Background(), &models.GetHostBookingsRequest{HostID: 1})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)

	// С includeCancelled видны оба
	resp, err = svc.GetHostBookings(context.Background(), &models.GetHostBookingsRequest{
		HostID:           1,
		IncludeCancelled: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestGetHostBookings_InvalidHost(t *testing.T) {
	svc := NewService(newFakeBookingStore(), newFakeSlotStore(), &fakeNotifier{}, stubTxManager{}, nopLogger{})

	_, err := svc.GetHostBookings(context.Background(), &models.GetHostBookingsRequest{HostID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
