package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	typeRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/appointmenttype"
	slotRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/slot"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// stubTxManager выполняет функцию без настоящей транзакции
type stubTxManager struct{}

func (stubTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTypeRepo struct {
	types map[int64]*domain.AppointmentType
}

func (f *fakeTypeRepo) GetByID(_ context.Context, id int64) (*domain.AppointmentType, error) {
	appointmentType, ok := f.types[id]
	if !ok {
		return nil, typeRepo.ErrTypeNotFound
	}
	return appointmentType, nil
}

// fakeSlotStore потокобезопасное in-memory хранилище слотов.
// UpdateStatus повторяет семантику репозитория: либо все слоты переходят
// из from в to, либо ни один (ErrConflict)
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

func (f *fakeSlotStore) List(_ context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.Slot
	for _, s := range f.slots {
		if s.HostID != filter.HostID {
			continue
		}
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		if filter.WindowStart != nil && filter.WindowEnd != nil &&
			!s.Overlaps(*filter.WindowStart, *filter.WindowEnd) {
			continue
		}
		copied := *s
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func (f *fakeSlotStore) UpdateStatus(_ context.Context, ids []int64, from, to domain.SlotStatus, bookingID *int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, id := range ids {
		s, ok := f.slots[id]
		if !ok || s.Status != from {
			return fmt.Errorf("%w: expected %d rows, affected 0", slotRepo.ErrConflict, len(ids))
		}
	}

	for _, id := range ids {
		f.slots[id].Status = to
		f.slots[id].BookingID = bookingID
	}
	return nil
}

func (f *fakeSlotStore) slot(id int64) domain.Slot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.slots[id]
}

type fakeBookingRepo struct {
	mu     sync.Mutex
	nextID int64
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	created := *booking
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	return &created, nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	confirmed []int64
}

func (f *fakeNotifier) BookingConfirmed(_ context.Context, booking *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmed = append(f.confirmed, booking.ID)
	return nil
}

// makeSlots строит цепочку свободных 15-минутных слотов хоста
func makeSlots(hostID int64, start time.Time, count int) []*domain.Slot {
	slots := make([]*domain.Slot, 0, count)
	cursor := start
	for i := 0; i < count; i++ {
		slots = append(slots, &domain.Slot{
			ID:        int64(i + 1),
			HostID:    hostID,
			StartTime: cursor,
			EndTime:   cursor.Add(15 * time.Minute),
			Status:    domain.SlotStatusAvailable,
		})
		cursor = cursor.Add(15 * time.Minute)
	}
	return slots
}

func newTestUseCase(slotStore SlotRepository, types map[int64]*domain.AppointmentType) (*UseCase, *fakeBookingRepo, *fakeNotifier) {
	bookingStore := &fakeBookingRepo{}
	notifier := &fakeNotifier{}
	uc := NewUseCase(
		bookingStore,
		slotStore,
		&fakeTypeRepo{types: types},
		notifier,
		stubTxManager{},
		15,
		nopLogger{},
	)
	return uc, bookingStore, notifier
}

func validRequest(base time.Time) *Request {
	return &Request{
		HostID:            1,
		WindowStart:       base,
		WindowEnd:         base.Add(30 * time.Minute),
		AppointmentTypeID: 10,
		Customer: domain.Customer{
			Name:  "Анна Смирнова",
			Email: "anna@example.com",
		},
	}
}

func thirtyMinuteType() map[int64]*domain.AppointmentType {
	return map[int64]*domain.AppointmentType{
		10: {ID: 10, Name: "Консультация", DurationMinutes: 30},
	}
}

func TestExecute_Success(t *testing.T) {
	base := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	store := newFakeSlotStore(makeSlots(1, base, 4)...)
	uc, _, _ := newTestUseCase(store, thirtyMinuteType())

	resp, err := uc.Execute(context.Background(), validRequest(base))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.NotEmpty(t, resp.Reference)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "Консультация", resp.AppointmentTypeName)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, []int64{1, 2}, resp.SlotIDs)

	// Захвачены ровно два первых слота, остальные не тронуты
	for _, id := range resp.SlotIDs {
		s := store.slot(id)
		assert.Equal(t, domain.SlotStatusBooked, s.Status)
		require.NotNil(t, s.BookingID)
		assert.Equal(t, resp.ID, *s.BookingID)
	}
	assert.Equal(t, domain.SlotStatusAvailable, store.slot(3).Status)
	assert.Equal(t, domain.SlotStatusAvailable, store.slot(4).Status)
}

func TestExecute_MidRunWindow(t *testing.T) {
	// Хост открыл 4 слота, окно попадает в середину цепочки
	base := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	store := newFakeSlotStore(makeSlots(1, base, 4)...)
	uc, _, _ := newTestUseCase(store, thirtyMinuteType())

	req := validRequest(base.Add(15 * time.Minute))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, resp.SlotIDs)
	assert.Equal(t, domain.SlotStatusAvailable, store.slot(1).Status)
	assert.Equal(t, domain.SlotStatusAvailable, store.slot(4).Status)
}

func TestExecute_AppointmentTypeNotFound(t *testing.T) {
	base := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	store := newFakeSlotStore(makeSlots(1, base, 4)...)
	uc, _, _ := newTestUseCase(store, nil)

	_, err := uc.Execute(context.Background(), validRequest(base))
	assert.ErrorIs(t, err, ErrAppointmentTypeNotFound)
}

func TestExecute_WindowDurationMismatch(t *testing.T) {
	base := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	store := newFakeSlotStore(makeSlots(1, base, 4)...)
	uc, _, _ := newTestUseCase(store, thirtyMinuteType())

	req := validRequest(base)
	req.WindowEnd = base.Add(45 * time.Minute) // тип требует 30 минут

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_WindowInPast(t *testing.T) {
	base := time.Now().Add(-2 * time.Hour).Truncate(time.Hour)
	store := newFakeSlotStore(makeSlots(1, base, 4)...)
	uc, _, _ := newTestUseCase(store, thirtyMinuteType())

	_, err := uc.Execute(context.Background(), validRequest(base))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_CustomerValidation(t *testing.T) {
	base := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	store := newFakeSlotStore(makeSlots(1, base, 4)...)
	uc, _, _ := newTestUseCase(store, thirtyMinuteType())

	req := validRequest(base)
	req.Customer.Name = "   "
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest(base)
	req.Customer.Email = "not-an-email"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_InsufficientAvailability(t *testing.T) {
	// Между слотами дыра: 09:00-09:15 и 09:30-09:45
	base := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	slots := makeSlots(1, base, 1)
	gapped := makeSlots(1, base.Add(30*time.Minute), 1)
	gapped[0].ID = 2
	store := newFakeSlotStore(append(slots, gapped...)...)
	uc, _, _ := newTestUseCase(store, thirtyMinuteType())

	_, err := uc.Execute(context.Background(), validRequest(base))
	assert.ErrorIs(t, err, ErrInsufficientAvailability)

	// Ничего не захвачено
	assert.Equal(t, domain.SlotStatusAvailable, store.slot(1).Status)
	assert.Equal(t, domain.SlotStatusAvailable, store.slot(2).Status)
}

// conflictSlotStore отдаёт слоты как свободные, но захват всегда проигрывает
// гонку - имитация конкурентного бронирования между чтением и обновлением
type conflictSlotStore struct {
	*fakeSlotStore
}

func (c *conflictSlotStore) UpdateStatus(_ context.Context, ids []int64, _, _ domain.SlotStatus, _ *int64) error {
	return fmt.Errorf("%w: expected %d rows, affected 0", slotRepo.ErrConflict, len(ids))
}

func TestExecute_SlotConflict(t *testing.T) {
	base := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	store := &conflictSlotStore{newFakeSlotStore(makeSlots(1, base, 4)...)}
	uc, _, _ := newTestUseCase(store, thirtyMinuteType())

	_, err := uc.Execute(context.Background(), validRequest(base))
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_ConcurrentRequests(t *testing.T) {
	// Несколько запросов конкурируют за одно окно - выигрывает ровно один
	const workers = 8

	base := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	store := newFakeSlotStore(makeSlots(1, base, 2)...)
	uc, _, _ := newTestUseCase(store, thirtyMinuteType())

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validRequest(base))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrSlotConflict) || errors.Is(err, ErrInsufficientAvailability):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)

	// Оба слота захвачены одним и тем же бронированием
	first := store.slot(1)
	second := store.slot(2)
	assert.Equal(t, domain.SlotStatusBooked, first.Status)
	assert.Equal(t, domain.SlotStatusBooked, second.Status)
	require.NotNil(t, first.BookingID)
	require.NotNil(t, second.BookingID)
	assert.Equal(t, *first.BookingID, *second.BookingID)
}
