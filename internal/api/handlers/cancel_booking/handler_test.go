package cancel_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SBP-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SBP-SchedulingService/internal/service/bookings"
	"github.com/m04kA/SBP-SchedulingService/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingService struct {
	gotID  int64
	gotReq *models.CancelBookingRequest
	resp   *models.BookingResponse
	err    error
}

func (f *fakeBookingService) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	f.gotID = bookingID
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func newTestRouter(service BookingService) *mux.Router {
	router := mux.NewRouter()
	handler := NewHandler(service, nopLogger{})

	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/bookings/{bookingId}/cancel", handler.Handle).Methods(http.MethodPost)

	return router
}

func cancelledBooking() *models.BookingResponse {
	reason := "не смогу прийти"
	return &models.BookingResponse{
		ID:                 42,
		CustomerID:         "cust-1",
		StaffID:            "staff-1",
		ServiceID:          "svc-haircut",
		BookingDate:        "2025-06-02",
		StartTime:          "10:00",
		EndTime:            "10:30",
		DurationMinutes:    30,
		Status:             "cancelled",
		CancellationReason: &reason,
	}
}

func TestHandle_CancelWithReason(t *testing.T) {
	service := &fakeBookingService{resp: cancelledBooking()}
	router := newTestRouter(service)

	body := strings.NewReader(`{"reason":"не смогу прийти"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/42/cancel", body)
	req.Header.Set("X-User-ID", "cust-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, service.gotReq)
	assert.Equal(t, int64(42), service.gotID)
	assert.Equal(t, "cust-1", service.gotReq.CallerID)
	assert.Equal(t, "не смогу прийти", service.gotReq.Reason)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, int64(42), resp.ID)
}

func TestHandle_EmptyBodyAllowed(t *testing.T) {
	service := &fakeBookingService{resp: cancelledBooking()}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/42/cancel", nil)
	req.Header.Set("X-User-ID", "cust-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, service.gotReq)
	assert.Equal(t, "", service.gotReq.Reason)
}

func TestHandle_MissingUserID(t *testing.T) {
	service := &fakeBookingService{resp: cancelledBooking()}
	router := newTestRouter(service)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/42/cancel", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, service.gotReq)
}

func TestHandle_InvalidBookingID(t *testing.T) {
	router := newTestRouter(&fakeBookingService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/abc/cancel", nil)
	req.Header.Set("X-User-ID", "cust-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandle_BookingNotFound(t *testing.T) {
	router := newTestRouter(&fakeBookingService{err: bookings.ErrBookingNotFound})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/404/cancel", nil)
	req.Header.Set("X-User-ID", "cust-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandle_AccessDenied(t *testing.T) {
	router := newTestRouter(&fakeBookingService{err: bookings.ErrAccessDenied})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/42/cancel", nil)
	req.Header.Set("X-User-ID", "cust-99")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandle_CompletedBookingConflict(t *testing.T) {
	router := newTestRouter(&fakeBookingService{err: bookings.ErrCannotCancel})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/42/cancel", nil)
	req.Header.Set("X-User-ID", "cust-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHandle_DirectoryUnavailable(t *testing.T) {
	router := newTestRouter(&fakeBookingService{err: bookings.ErrDirectoryUnavailable})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings/42/cancel", nil)
	req.Header.Set("X-User-ID", "cust-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
