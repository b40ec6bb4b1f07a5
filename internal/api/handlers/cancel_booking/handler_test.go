package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/CourtBookingService/internal/api/middleware"
	"github.com/m04kA/CourtBookingService/internal/service/bookings"
	"github.com/m04kA/CourtBookingService/internal/service/bookings/models"
)

type fakeService struct {
	err error
}

func (f *fakeService) Cancel(context.Context, int64, *models.CancelBookingRequest) error {
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doCancel(svcErr error) *httptest.ResponseRecorder {
	h := NewHandler(&fakeService{err: svcErr}, nopLogger{})

	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/bookings/{bookingId}/cancel", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/bookings/1/cancel", nil)
	req.Header.Set(middleware.UserIDHeader, "100")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{"success", nil, http.StatusNoContent},
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"access denied", bookings.ErrAccessDenied, http.StatusForbidden},
		// Отмена в неподходящем статусе - конфликт состояния
		{"cannot cancel", bookings.ErrCannotCancel, http.StatusConflict},
		// Нарушение временного ограничения - ошибка предусловия
		{"too late to cancel", bookings.ErrTooLateToCancel, http.StatusBadRequest},
		{"invalid input", bookings.ErrInvalidInput, http.StatusBadRequest},
		{"internal error", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doCancel(tt.svcErr)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
