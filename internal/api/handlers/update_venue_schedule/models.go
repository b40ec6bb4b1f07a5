package update_venue_schedule

import "github.com/m04kA/CourtBookingService/internal/service/venues/models"

// UpdateScheduleRequest HTTP request model
// Ключи weeklyWindows - дни недели, 0 = воскресенье
type UpdateScheduleRequest struct {
	WeeklyWindows  map[int][]models.WindowPayload `json:"weeklyWindows"`
	ClosedWeekdays []int                          `json:"closedWeekdays"`
	ClosedDates    []string                       `json:"closedDates"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(userID int64) *models.UpdateScheduleRequest {
	return &models.UpdateScheduleRequest{
		UserID:         userID,
		WeeklyWindows:  r.WeeklyWindows,
		ClosedWeekdays: r.ClosedWeekdays,
		ClosedDates:    r.ClosedDates,
	}
}
