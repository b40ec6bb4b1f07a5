package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/CourtBookingService/internal/domain"
	"github.com/m04kA/CourtBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	// Интервал должен иметь положительную длину
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if req.Total != nil && *req.Total < 0 {
		return fmt.Errorf("%w: total must not be negative", ErrInvalidInput)
	}

	return nil
}

// findConflictingBooking ищет существующее бронирование, пересекающееся с запрошенным интервалом.
// Интервалы полуоткрытые: бронирования, граничащие по времени (конец одного равен началу
// другого), конфликтом не считаются. Отмененные бронирования слот не блокируют.
func findConflictingBooking(
	startTime, endTime types.TimeString,
	bookings []*domain.Booking,
) *domain.Booking {
	reqStart := startTime.Minutes()
	reqEnd := endTime.Minutes()

	for _, booking := range bookings {
		if !booking.BlocksSlot() {
			continue
		}

		if types.Overlaps(reqStart, reqEnd, booking.StartTime.Minutes(), booking.EndTime.Minutes()) {
			return booking
		}
	}

	return nil
}

// resolveTotal вычисляет итоговую цену бронирования.
// Приоритет: цена из запроса, затем базовая цена площадки, иначе цена не задана.
func resolveTotal(requested *float64, venue *domain.Venue) *float64 {
	if requested != nil {
		return requested
	}
	return venue.BasePrice
}
