package get_availability

import (
	"fmt"

	"github.com/m04kA/CourtBookingService/internal/domain"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venue_id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.SlotMinutes != 0 && (req.SlotMinutes < domain.MinSlotMinutes || req.SlotMinutes > domain.MaxSlotMinutes) {
		return fmt.Errorf("%w: slot_minutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotMinutes, domain.MaxSlotMinutes)
	}

	return nil
}
