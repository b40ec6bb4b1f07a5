package get_availability

import (
	"time"

	"github.com/m04kA/CourtBookingService/internal/domain"
)

// Request модель запроса на расчет доступности площадки
type Request struct {
	VenueID     int64     // ID площадки
	Date        time.Time // Дата, на которую рассчитываются слоты (без времени)
	SlotMinutes int       // Длительность слота в минутах; 0 означает значение по умолчанию
}

// Response модель ответа с рассчитанными слотами
type Response struct {
	VenueID int64         // ID площадки
	Date    time.Time     // Дата расчета
	Closed  bool          // Площадка закрыта в этот день
	Slots   []domain.Slot // Слоты в порядке генерации (по окнам, внутри окна - по времени)
}
