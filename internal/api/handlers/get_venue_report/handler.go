package get_venue_report

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/CourtBookingService/internal/api/handlers"
	"github.com/m04kA/CourtBookingService/internal/api/middleware"
	"github.com/m04kA/CourtBookingService/internal/service/reports"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgInvalidPeriod  = "некорректный период отчета, ожидаются параметры year и month"
	msgVenueNotFound  = "площадка не найдена"
	msgAccessDenied   = "только владелец площадки может смотреть отчеты"
)

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/reports/monthly?year=2026&month=3
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/reports/monthly - Invalid venue ID: %s", vars["venueId"])
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	query := r.URL.Query()

	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.MonthlyReport(r.Context(), &reports.MonthlyReportRequest{
		UserID:  userID,
		VenueID: venueID,
		Year:    year,
		Month:   month,
	})
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/reports/monthly - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, reports.ErrAccessDenied):
			h.logger.Warn("GET /venues/{id}/reports/monthly - Access denied: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reports.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/reports/monthly - Invalid period: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /venues/{id}/reports/monthly - Failed: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
