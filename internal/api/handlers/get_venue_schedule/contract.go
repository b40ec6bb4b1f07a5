package get_venue_schedule

import (
	"context"

	"github.com/m04kA/CourtBookingService/internal/service/venues/models"
)

type VenueService interface {
	GetSchedule(ctx context.Context, venueID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
