package domain

import (
	"time"

	"github.com/m04kA/CourtBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusActive              BookingStatus = "active"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelledByCustomer BookingStatus = "cancelled_by_customer"
	StatusCancelledByVenue    BookingStatus = "cancelled_by_venue"
)

// Booking represents a court reservation in the system
type Booking struct {
	ID         int64
	VenueID    int64
	CustomerID int64

	BookingDate time.Time // calendar date, time-of-day is always midnight
	StartTime   types.TimeString
	EndTime     types.TimeString

	// Denormalized customer data for history and notifications
	CustomerName  string
	CustomerPhone *string
	CustomerEmail *string
	PaymentMethod *string

	// Total is nil when neither the request nor the venue supplied a price
	Total *float64

	Status             BookingStatus
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// IsCancelled returns true if the booking has been cancelled by either party
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByCustomer || b.Status == StatusCancelledByVenue
}

// IsTerminal returns true if no further transitions are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status != StatusActive
}

// BlocksSlot returns true if the booking must be counted when checking
// slot occupancy. Cancelled bookings free their slot.
func (b *Booking) BlocksSlot() bool {
	return !b.IsCancelled()
}

// StartAt returns the absolute start instant of the booking
func (b *Booking) StartAt() time.Time {
	return dateWithMinutes(b.BookingDate, b.StartTime.Minutes())
}

// EndAt returns the absolute end instant of the booking
func (b *Booking) EndAt() time.Time {
	return dateWithMinutes(b.BookingDate, b.EndTime.Minutes())
}

func dateWithMinutes(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, minutes, 0, 0, date.Location())
}

// VenueBookingsFilter фильтр для получения бронирований площадки
type VenueBookingsFilter struct {
	VenueID         int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные бронирования
}
