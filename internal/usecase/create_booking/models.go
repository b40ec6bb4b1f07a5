package create_booking

import (
	"time"

	"github.com/m04kA/CourtBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID    int64            // ID клиента (из заголовка аутентификации)
	VenueID       int64            // ID площадки
	Date          time.Time        // Дата бронирования (без времени)
	StartTime     types.TimeString // Время начала, например "10:00"
	EndTime       types.TimeString // Время окончания, например "11:00"
	CustomerName  string           // Имя клиента для площадки
	CustomerPhone *string          // Телефон клиента (опционально)
	CustomerEmail *string          // Email клиента для уведомлений (опционально)
	PaymentMethod *string          // Способ оплаты (опционально)
	Total         *float64         // Итоговая цена; nil - берется базовая цена площадки
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	VenueID       int64
	CustomerID    int64
	BookingDate   time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	CustomerName  string
	CustomerPhone *string
	CustomerEmail *string
	PaymentMethod *string
	Total         *float64
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
