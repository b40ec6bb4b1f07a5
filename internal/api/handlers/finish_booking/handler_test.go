package finish_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/CourtBookingService/internal/api/middleware"
	"github.com/m04kA/CourtBookingService/internal/service/bookings"
)

type fakeService struct {
	err error
}

func (f *fakeService) Complete(context.Context, int64, int64) error   { return f.err }
func (f *fakeService) MarkNoShow(context.Context, int64, int64) error { return f.err }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doFinish(path string, svcErr error) *httptest.ResponseRecorder {
	h := NewHandler(&fakeService{err: svcErr}, nopLogger{})

	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/bookings/{bookingId}/complete", h.HandleComplete).Methods(http.MethodPatch)
	r.HandleFunc("/bookings/{bookingId}/no-show", h.HandleNoShow).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, nil)
	req.Header.Set(middleware.UserIDHeader, "10")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestFinish_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		svcErr     error
		wantStatus int
	}{
		{"success", nil, http.StatusNoContent},
		{"not found", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"access denied", bookings.ErrAccessDenied, http.StatusForbidden},
		// Завершение до окончания - ошибка предусловия
		{"not finished yet", bookings.ErrNotFinishedYet, http.StatusBadRequest},
		// Завершение в неподходящем статусе - конфликт состояния
		{"invalid status", bookings.ErrInvalidStatus, http.StatusConflict},
		{"internal error", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, path := range []string{"/bookings/1/complete", "/bookings/1/no-show"} {
		for _, tt := range tests {
			t.Run(path+" "+tt.name, func(t *testing.T) {
				rec := doFinish(path, tt.svcErr)
				assert.Equal(t, tt.wantStatus, rec.Code)
			})
		}
	}
}
