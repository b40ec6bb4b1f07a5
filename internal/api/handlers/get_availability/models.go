package get_availability

import (
	"github.com/m04kA/CourtBookingService/internal/domain"
	getAvailability "github.com/m04kA/CourtBookingService/internal/usecase/get_availability"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	Start  string `json:"start"`  // "10:00"
	End    string `json:"end"`    // "11:00"
	Status string `json:"status"` // "free" или "reserved"
}

// AvailabilityResponse HTTP модель ответа с доступностью площадки
type AvailabilityResponse struct {
	VenueID int64          `json:"venueId"`
	Date    string         `json:"date"` // "2026-03-15"
	Closed  bool           `json:"closed"`
	Slots   []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			Start:  slot.Start.String(),
			End:    slot.End.String(),
			Status: string(slot.Status),
		}
	}

	return &AvailabilityResponse{
		VenueID: resp.VenueID,
		Date:    resp.Date.Format(domain.DateFormat),
		Closed:  resp.Closed,
		Slots:   slots,
	}
}
