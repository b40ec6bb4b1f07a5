package domain

import "time"

// Venue represents a bookable sports facility with its embedded schedule
type Venue struct {
	ID         int64
	Name       string
	OwnerID    int64
	OwnerEmail string

	// BasePrice is the fallback total for bookings that do not supply one.
	// Nil means the venue has no configured price.
	BasePrice *float64

	Schedule Schedule

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy returns true if the user owns this venue
func (v *Venue) IsOwnedBy(userID int64) bool {
	return v.OwnerID == userID
}
