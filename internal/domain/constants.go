package domain

import "time"

// Default configuration values
const (
	DefaultSlotMinutes = 60
)

// Business validation constants
const (
	MinSlotMinutes              = 5
	MaxSlotMinutes              = 480 // 8 hours
	MaxCancellationReasonLength = 500

	// CustomerCancelNotice минимальное время до начала, при котором клиент
	// еще может отменить бронирование (граница включается: ровно 3 часа - можно)
	CustomerCancelNotice = 3 * time.Hour

	// VenueCancelNotice минимальное время до начала для отмены владельцем
	// (граница НЕ включается: ровно 3 часа - уже нельзя)
	VenueCancelNotice = 3 * time.Hour
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CancelReasonNoShow причина отмены, фиксирующая неявку клиента.
// Отдельного статуса для no-show нет - неявка схлопывается в отмену владельцем.
const CancelReasonNoShow = "no_show"

// InactiveStatuses список статусов неактивных бронирований
// Используется для фильтрации при подсчёте занятых слотов
var InactiveStatuses = []BookingStatus{
	StatusCancelledByCustomer,
	StatusCancelledByVenue,
}

// ActiveStatuses список статусов, учитываемых при проверке пересечений
var ActiveStatuses = []BookingStatus{
	StatusActive,
	StatusCompleted,
}
