package finish_booking

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CourtBookingService/internal/api/handlers"
	"github.com/m04kA/CourtBookingService/internal/api/middleware"
	"github.com/m04kA/CourtBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgBookingNotFound  = "бронирование не найдено"
	msgAccessDenied     = "только владелец площадки может завершить бронирование"
	msgNotFinishedYet   = "бронирование еще не закончилось"
	msgInvalidStatus    = "бронирование не в активном статусе"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleComplete PATCH /api/v1/bookings/{bookingId}/complete
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, "complete", h.service.Complete)
}

// HandleNoShow PATCH /api/v1/bookings/{bookingId}/no-show
func (h *Handler) HandleNoShow(w http.ResponseWriter, r *http.Request) {
	h.finish(w, r, "no-show", h.service.MarkNoShow)
}

// finish общий сценарий завершения: парсинг ID, вызов сервиса, маппинг ошибок
func (h *Handler) finish(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	fn func(ctx context.Context, bookingID int64, userID int64) error,
) {
	userID := middleware.GetUserID(r.Context())

	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/%s - Invalid booking ID: %s", action, vars["bookingId"])
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	if err := fn(r.Context(), bookingID, userID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/%s - Booking not found: booking_id=%d", action, bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/%s - Access denied: booking_id=%d, user_id=%d", action, bookingID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		// Нарушение временного ограничения - ошибка предусловия, а не конфликт состояния
		case errors.Is(err, bookings.ErrNotFinishedYet):
			h.logger.Warn("PATCH /bookings/{id}/%s - Not finished yet: booking_id=%d", action, bookingID)
			handlers.RespondBadRequest(w, msgNotFinishedYet)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PATCH /bookings/{id}/%s - Invalid status: booking_id=%d", action, bookingID)
			handlers.RespondError(w, http.StatusConflict, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /bookings/{id}/%s - Failed: booking_id=%d, error=%v", action, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/%s - Success: booking_id=%d, user_id=%d", action, bookingID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
