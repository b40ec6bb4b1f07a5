package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/CourtBookingService/internal/api/handlers"
	"github.com/m04kA/CourtBookingService/internal/domain"
	getAvailability "github.com/m04kA/CourtBookingService/internal/usecase/get_availability"
)

const (
	msgInvalidVenueID     = "некорректный ID площадки"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSlotMinutes = "некорректная длительность слота"
	msgVenueNotFound      = "площадка не найдена"
	msgInvalidRequest     = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/availability?date=YYYY-MM-DD&slotMinutes=60
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	venueID, err := strconv.ParseInt(vars["venueId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/availability - Invalid venue ID: %s", vars["venueId"])
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /venues/{id}/availability - Invalid date: %s", r.URL.Query().Get("date"))
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Длительность слота опциональна, 0 означает значение по умолчанию
	slotMinutes := 0
	if rawSlot := r.URL.Query().Get("slotMinutes"); rawSlot != "" {
		slotMinutes, err = strconv.Atoi(rawSlot)
		if err != nil {
			h.logger.Warn("GET /venues/{id}/availability - Invalid slotMinutes: %s", rawSlot)
			handlers.RespondBadRequest(w, msgInvalidSlotMinutes)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		VenueID:     venueID,
		Date:        date,
		SlotMinutes: slotMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/availability - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/availability - Invalid input: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /venues/{id}/availability - Failed: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
