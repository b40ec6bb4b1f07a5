package domain

import "github.com/m04kA/CourtBookingService/pkg/types"

// SlotStatus occupancy status of a generated slot
type SlotStatus string

const (
	SlotFree     SlotStatus = "free"
	SlotReserved SlotStatus = "reserved"
)

// Slot is a bookable time interval derived from a venue's open windows.
// Slots are generated fresh per availability query and never persisted.
type Slot struct {
	Start  types.TimeString
	End    types.TimeString
	Status SlotStatus
}

// IsFree returns true if the slot is not occupied by any booking
func (s *Slot) IsFree() bool {
	return s.Status == SlotFree
}
