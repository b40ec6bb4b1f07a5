package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrVenueNotFound возвращается, когда площадка не найдена
	ErrVenueNotFound = errors.New("venue not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено (не активно)
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrTooLateToCancel возвращается, когда нарушено минимальное время до начала бронирования
	ErrTooLateToCancel = errors.New("too late to cancel this booking")

	// ErrNotFinishedYet возвращается при попытке завершить бронирование до его окончания
	ErrNotFinishedYet = errors.New("booking has not finished yet")

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
