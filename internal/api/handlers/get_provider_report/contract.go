package get_provider_report

import (
	"context"

	"github.com/m04kA/CourtBookingService/internal/service/reports"
)

type ReportService interface {
	ProviderMonthlyReport(ctx context.Context, req *reports.ProviderReportRequest) (*reports.ProviderReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
