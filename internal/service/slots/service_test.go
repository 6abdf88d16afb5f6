package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	slotRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SchedulerService/internal/service/slots/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeSlotRepo struct {
	createErr error
	deleteErr error
	created   []*domain.Slot
	listed    []*domain.Slot
	lastID    int64
}

func (f *fakeSlotRepo) Create(_ context.Context, slot *domain.Slot) (*domain.Slot, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastID++
	created := *slot
	created.ID = f.lastID
	created.Status = domain.SlotStatusAvailable
	f.created = append(f.created, &created)
	return &created, nil
}

func (f *fakeSlotRepo) Delete(_ context.Context, _ int64) error {
	return f.deleteErr
}

func (f *fakeSlotRepo) List(_ context.Context, _ domain.SlotsFilter) ([]*domain.Slot, error) {
	return f.listed, nil
}

func newTestService(repo *fakeSlotRepo) *Service {
	return NewService(repo, 15, nopLogger{})
}

func validCreateRequest() *models.CreateSlotRequest {
	start := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)
	return &models.CreateSlotRequest{
		HostID:    1,
		StartTime: start,
		EndTime:   start.Add(15 * time.Minute),
	}
}

func TestCreate_Success(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "available", resp.Status)
	assert.Nil(t, resp.BookingID)
}

func TestCreate_WrongDuration(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{})

	req := validCreateRequest()
	req.EndTime = req.StartTime.Add(20 * time.Minute)

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_MisalignedBoundary(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{})

	req := validCreateRequest()
	req.StartTime = req.StartTime.Add(30 * time.Second)
	req.EndTime = req.StartTime.Add(15 * time.Minute)

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_EndBeforeStart(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{})

	req := validCreateRequest()
	req.StartTime, req.EndTime = req.EndTime, req.StartTime

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_Overlap(t *testing.T) {
	repo := &fakeSlotRepo{createErr: slotRepo.ErrSlotOverlap}
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrSlotOverlap)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &fakeSlotRepo{deleteErr: slotRepo.ErrSlotNotFound}
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestDelete_Booked(t *testing.T) {
	repo := &fakeSlotRepo{deleteErr: slotRepo.ErrSlotBooked}
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSlotBooked)
}

func TestDelete_Success(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{})
	assert.NoError(t, svc.Delete(context.Background(), 1))
}

func TestList_StatusFilter(t *testing.T) {
	start := time.Date(2026, 9, 14, 9, 0, 0, 0, time.UTC)
	repo := &fakeSlotRepo{listed: []*domain.Slot{
		{ID: 1, HostID: 1, StartTime: start, EndTime: start.Add(15 * time.Minute),
			Status: domain.SlotStatusAvailable},
	}}
	svc := newTestService(repo)

	status := "available"
	resp, err := svc.List(context.Background(), &models.ListSlotsRequest{HostID: 1, Status: &status})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 1)
}

func TestList_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{})

	status := "pending"
	_, err := svc.List(context.Background(), &models.ListSlotsRequest{HostID: 1, Status: &status})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_InvalidWindow(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{})

	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)
	_, err := svc.List(context.Background(), &models.ListSlotsRequest{
		HostID:      1,
		WindowStart: &start,
		WindowEnd:   &end,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
