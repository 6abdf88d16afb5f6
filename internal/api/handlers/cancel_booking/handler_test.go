package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulerService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulerService/internal/service/bookings"
	bookingModels "github.com/m04kA/SMC-SchedulerService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingService struct {
	err        error
	lastID     int64
	lastReason *string
}

func (f *fakeBookingService) Cancel(_ context.Context, bookingID int64, req *bookingModels.CancelBookingRequest) error {
	f.lastID = bookingID
	f.lastReason = req.Reason
	return f.err
}

func newTestRouter(svc BookingService) *mux.Router {
	handler := NewHandler(svc, nopLogger{})

	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/bookings/{bookingId}/cancel", handler.Handle).Methods(http.MethodPatch)
	return r
}

func doCancel(t *testing.T, router *mux.Router, path, body string, withAuth bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	if withAuth {
		req.Header.Set("X-User-ID", "7")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeBookingService{}
	router := newTestRouter(svc)

	rec := doCancel(t, router, "/api/v1/bookings/42/cancel", `{"reason":"перенос встречи"}`, true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), svc.lastID)
	require.NotNil(t, svc.lastReason)
	assert.Equal(t, "перенос встречи", *svc.lastReason)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &fakeBookingService{}
	router := newTestRouter(svc)

	rec := doCancel(t, router, "/api/v1/bookings/42/cancel", "", true)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.lastReason)
}

func TestHandle_NotFound(t *testing.T) {
	svc := &fakeBookingService{err: bookings.ErrBookingNotFound}
	router := newTestRouter(svc)

	rec := doCancel(t, router, "/api/v1/bookings/42/cancel", "{}", true)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_InvalidBookingID(t *testing.T) {
	svc := &fakeBookingService{}
	router := newTestRouter(svc)

	rec := doCancel(t, router, "/api/v1/bookings/abc/cancel", "{}", true)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MissingAuthHeader(t *testing.T) {
	svc := &fakeBookingService{}
	router := newTestRouter(svc)

	rec := doCancel(t, router, "/api/v1/bookings/42/cancel", "{}", false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	svc := &fakeBookingService{err: bookings.ErrInternal}
	router := newTestRouter(svc)

	rec := doCancel(t, router, "/api/v1/bookings/42/cancel", "{}", true)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
