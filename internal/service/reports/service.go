package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CourtBookingService/internal/domain"
	venueRepo "github.com/m04kA/CourtBookingService/internal/infra/storage/venue"
)

// Service сервис отчетности по площадкам
type Service struct {
	bookingRepo BookingRepository
	venueRepo   VenueRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(bookingRepo BookingRepository, venueRepo VenueRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		logger:      logger,
	}
}

// MonthlyReport строит месячный отчет по площадке.
// Доступно только владельцу площадки. В выручку входят активные и завершенные
// бронирования, отмененные попадают только в счетчики по статусам.
// Дневной ряд всегда содержит все дни месяца, даже без бронирований.
func (s *Service) MonthlyReport(ctx context.Context, req *MonthlyReportRequest) (*MonthlyReportResponse, error) {
	s.logger.Info("MonthlyReport: building report for venue=%d, period=%d-%02d, user=%d",
		req.VenueID, req.Year, req.Month, req.UserID)

	// 1. Валидация периода
	if err := validatePeriod(req.Year, req.Month); err != nil {
		s.logger.Warn("MonthlyReport: invalid period %d-%d: %v", req.Year, req.Month, err)
		return nil, err
	}

	// 2. Проверяем права владельца площадки
	venue, err := s.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("MonthlyReport: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("MonthlyReport: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: MonthlyReport - repository error: %v", ErrInternal, err)
	}

	if !venue.IsOwnedBy(req.UserID) {
		s.logger.Warn("MonthlyReport: user=%d is not the owner of venue=%d", req.UserID, req.VenueID)
		return nil, ErrAccessDenied
	}

	// 3. Границы месяца
	firstDay := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.AddDate(0, 1, -1)
	daysInMonth := lastDay.Day()

	// 4. Получаем все бронирования месяца, включая отмененные
	filter := domain.VenueBookingsFilter{
		VenueID:         req.VenueID,
		StartDate:       &firstDay,
		EndDate:         &lastDay,
		IncludeInactive: true,
	}

	bookings, err := s.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("MonthlyReport: failed to get bookings for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: MonthlyReport - repository error: %v", ErrInternal, err)
	}

	// 5. Агрегируем: пустые дни остаются в ряду с нулями
	daily := newDailySeries(daysInMonth)
	byStatus := make(map[string]int)
	totalRevenue := accumulate(bookings, daily, byStatus)

	s.logger.Info("MonthlyReport: venue=%d, period=%d-%02d, bookings=%d, revenue=%.2f",
		req.VenueID, req.Year, req.Month, len(bookings), totalRevenue)

	return &MonthlyReportResponse{
		VenueID:       req.VenueID,
		Year:          req.Year,
		Month:         req.Month,
		TotalBookings: len(bookings),
		TotalRevenue:  totalRevenue,
		ByStatus:      byStatus,
		Daily:         daily,
	}, nil
}

// ProviderMonthlyReport строит сводный месячный отчет владельца по всем его
// площадкам. Площадки других владельцев в отчет не попадают; владелец без
// площадок получает пустой отчет с нулевым рядом по дням.
func (s *Service) ProviderMonthlyReport(ctx context.Context, req *ProviderReportRequest) (*ProviderReportResponse, error) {
	s.logger.Info("ProviderMonthlyReport: building report for provider=%d, period=%d-%02d",
		req.ProviderID, req.Year, req.Month)

	// 1. Валидация периода
	if err := validatePeriod(req.Year, req.Month); err != nil {
		s.logger.Warn("ProviderMonthlyReport: invalid period %d-%d: %v", req.Year, req.Month, err)
		return nil, err
	}

	// 2. Все площадки владельца
	venues, err := s.venueRepo.GetByOwnerID(ctx, req.ProviderID)
	if err != nil {
		s.logger.Error("ProviderMonthlyReport: failed to get venues for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: ProviderMonthlyReport - repository error: %v", ErrInternal, err)
	}

	// 3. Границы месяца
	firstDay := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.AddDate(0, 1, -1)
	daysInMonth := lastDay.Day()

	// 4. Агрегируем бронирования каждой площадки в один общий ряд
	daily := newDailySeries(daysInMonth)
	byStatus := make(map[string]int)
	venueIDs := make([]int64, 0, len(venues))

	var totalBookings int
	var totalRevenue float64

	for _, venue := range venues {
		venueIDs = append(venueIDs, venue.ID)

		filter := domain.VenueBookingsFilter{
			VenueID:         venue.ID,
			StartDate:       &firstDay,
			EndDate:         &lastDay,
			IncludeInactive: true,
		}

		bookings, err := s.bookingRepo.GetByVenueWithFilter(ctx, filter)
		if err != nil {
			s.logger.Error("ProviderMonthlyReport: failed to get bookings for venue=%d: %v", venue.ID, err)
			return nil, fmt.Errorf("%w: ProviderMonthlyReport - repository error: %v", ErrInternal, err)
		}

		totalBookings += len(bookings)
		totalRevenue += accumulate(bookings, daily, byStatus)
	}

	s.logger.Info("ProviderMonthlyReport: provider=%d, period=%d-%02d, venues=%d, bookings=%d, revenue=%.2f",
		req.ProviderID, req.Year, req.Month, len(venues), totalBookings, totalRevenue)

	return &ProviderReportResponse{
		ProviderID:    req.ProviderID,
		Year:          req.Year,
		Month:         req.Month,
		VenueIDs:      venueIDs,
		TotalBookings: totalBookings,
		TotalRevenue:  totalRevenue,
		ByStatus:      byStatus,
		Daily:         daily,
	}, nil
}

// validatePeriod проверяет, что месяц и год задают осмысленный период отчета
func validatePeriod(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}
	if year < 2000 || year > 2200 {
		return fmt.Errorf("%w: year is out of range", ErrInvalidInput)
	}
	return nil
}

// newDailySeries создает ряд по дням месяца, заполненный нулями
func newDailySeries(daysInMonth int) []DailyStat {
	daily := make([]DailyStat, daysInMonth)
	for i := range daily {
		daily[i].Day = i + 1
	}
	return daily
}

// accumulate раскладывает бронирования по дневному ряду и счетчикам статусов,
// возвращая суммарную выручку. Отмененные бронирования попадают только в
// счетчики по статусам.
func accumulate(bookings []*domain.Booking, daily []DailyStat, byStatus map[string]int) float64 {
	var revenue float64

	for _, booking := range bookings {
		byStatus[string(booking.Status)]++

		if booking.IsCancelled() {
			continue
		}

		day := booking.BookingDate.Day()
		if day < 1 || day > len(daily) {
			continue
		}

		if booking.Total != nil {
			revenue += *booking.Total
			daily[day-1].Revenue += *booking.Total
		}
		if booking.Status == domain.StatusCompleted {
			daily[day-1].Completed++
		}
	}

	return revenue
}
