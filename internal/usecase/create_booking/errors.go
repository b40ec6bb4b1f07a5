package create_booking

import "errors"

var (
	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("create_booking: venue not found")

	// ErrVenueClosed возвращается, когда площадка закрыта в указанную дату
	ErrVenueClosed = errors.New("create_booking: venue is closed on this date")

	// ErrSlotConflict возвращается, когда запрошенный интервал пересекается с существующим бронированием
	ErrSlotConflict = errors.New("create_booking: time slot conflicts with an existing booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
