package get_venue_report

import (
	"context"

	"github.com/m04kA/CourtBookingService/internal/service/reports"
)

type ReportService interface {
	MonthlyReport(ctx context.Context, req *reports.MonthlyReportRequest) (*reports.MonthlyReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
