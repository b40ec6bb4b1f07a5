package update_venue_schedule

import (
	"context"

	"github.com/m04kA/CourtBookingService/internal/service/venues/models"
)

type VenueService interface {
	UpdateSchedule(ctx context.Context, venueID int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
