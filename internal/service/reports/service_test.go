package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CourtBookingService/internal/domain"
	venueRepo "github.com/m04kA/CourtBookingService/internal/infra/storage/venue"
	"github.com/m04kA/CourtBookingService/pkg/ptr"
)

// Фейки

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByVenueWithFilter(_ context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.VenueID != filter.VenueID {
			continue
		}
		if filter.StartDate != nil && b.BookingDate.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && b.BookingDate.After(*filter.EndDate) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeVenueRepo struct {
	venue *domain.Venue
	owned []*domain.Venue
	err   error
}

func (f *fakeVenueRepo) GetByID(_ context.Context, _ int64) (*domain.Venue, error) {
	return f.venue, f.err
}

func (f *fakeVenueRepo) GetByOwnerID(_ context.Context, ownerID int64) ([]*domain.Venue, error) {
	out := make([]*domain.Venue, 0)
	for _, v := range f.owned {
		if v.OwnerID == ownerID {
			out = append(out, v)
		}
	}
	return out, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const ownerID = int64(10)

func ownedVenue() *domain.Venue {
	return &domain.Venue{ID: 1, Name: "Центральный корт", OwnerID: ownerID}
}

func booking(day int, status domain.BookingStatus, total *float64) *domain.Booking {
	return venueBooking(1, day, status, total)
}

func venueBooking(venueID int64, day int, status domain.BookingStatus, total *float64) *domain.Booking {
	return &domain.Booking{
		VenueID:     venueID,
		CustomerID:  100,
		BookingDate: time.Date(2026, time.February, day, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "11:00",
		Status:      status,
		Total:       total,
	}
}

func TestMonthlyReport(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		booking(3, domain.StatusCompleted, ptr.Ptr(30.0)),
		booking(3, domain.StatusCompleted, ptr.Ptr(45.0)),
		booking(10, domain.StatusActive, ptr.Ptr(25.0)),
		booking(10, domain.StatusCancelledByCustomer, ptr.Ptr(25.0)),
		booking(20, domain.StatusCancelledByVenue, ptr.Ptr(60.0)),
		booking(28, domain.StatusCompleted, nil),
	}}
	svc := NewService(repo, &fakeVenueRepo{venue: ownedVenue()}, nopLogger{})

	resp, err := svc.MonthlyReport(context.Background(), &MonthlyReportRequest{
		UserID:  ownerID,
		VenueID: 1,
		Year:    2026,
		Month:   2,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, resp.TotalBookings)
	// Отмененные бронирования в выручку не входят
	assert.Equal(t, 100.0, resp.TotalRevenue)
	assert.Equal(t, map[string]int{
		"completed":             3,
		"active":                1,
		"cancelled_by_customer": 1,
		"cancelled_by_venue":    1,
	}, resp.ByStatus)

	// Февраль 2026 - 28 дней, пустые дни с нулями
	require.Len(t, resp.Daily, 28)
	assert.Equal(t, DailyStat{Day: 1}, resp.Daily[0])
	assert.Equal(t, DailyStat{Day: 3, Revenue: 75.0, Completed: 2}, resp.Daily[2])
	assert.Equal(t, DailyStat{Day: 10, Revenue: 25.0}, resp.Daily[9])
	assert.Equal(t, DailyStat{Day: 20}, resp.Daily[19])
	assert.Equal(t, DailyStat{Day: 28, Completed: 1}, resp.Daily[27])
}

func TestMonthlyReport_EmptyMonth(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, &fakeVenueRepo{venue: ownedVenue()}, nopLogger{})

	resp, err := svc.MonthlyReport(context.Background(), &MonthlyReportRequest{
		UserID:  ownerID,
		VenueID: 1,
		Year:    2026,
		Month:   12,
	})
	require.NoError(t, err)

	assert.Zero(t, resp.TotalBookings)
	assert.Zero(t, resp.TotalRevenue)
	assert.Empty(t, resp.ByStatus)
	assert.Len(t, resp.Daily, 31)
}

func TestMonthlyReport_AccessDenied(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, &fakeVenueRepo{venue: ownedVenue()}, nopLogger{})

	_, err := svc.MonthlyReport(context.Background(), &MonthlyReportRequest{
		UserID:  999,
		VenueID: 1,
		Year:    2026,
		Month:   2,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestMonthlyReport_VenueNotFound(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, &fakeVenueRepo{err: venueRepo.ErrVenueNotFound}, nopLogger{})

	_, err := svc.MonthlyReport(context.Background(), &MonthlyReportRequest{
		UserID:  ownerID,
		VenueID: 42,
		Year:    2026,
		Month:   2,
	})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestProviderMonthlyReport(t *testing.T) {
	// Два корта владельца и чужой корт, который в отчет попасть не должен
	venues := &fakeVenueRepo{owned: []*domain.Venue{
		{ID: 1, Name: "Центральный корт", OwnerID: ownerID},
		{ID: 2, Name: "Северный корт", OwnerID: ownerID},
		{ID: 3, Name: "Чужой корт", OwnerID: 999},
	}}
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		venueBooking(1, 3, domain.StatusCompleted, ptr.Ptr(30.0)),
		venueBooking(2, 3, domain.StatusCompleted, ptr.Ptr(50.0)),
		venueBooking(2, 10, domain.StatusActive, ptr.Ptr(25.0)),
		venueBooking(2, 10, domain.StatusCancelledByVenue, ptr.Ptr(70.0)),
		venueBooking(3, 5, domain.StatusCompleted, ptr.Ptr(500.0)),
	}}
	svc := NewService(repo, venues, nopLogger{})

	resp, err := svc.ProviderMonthlyReport(context.Background(), &ProviderReportRequest{
		ProviderID: ownerID,
		Year:       2026,
		Month:      2,
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2}, resp.VenueIDs)
	// Бронирования чужого корта в отчет не входят
	assert.Equal(t, 4, resp.TotalBookings)
	assert.Equal(t, 105.0, resp.TotalRevenue)
	assert.Equal(t, map[string]int{
		"completed":          2,
		"active":             1,
		"cancelled_by_venue": 1,
	}, resp.ByStatus)

	require.Len(t, resp.Daily, 28)
	// День 3 собирает выручку обоих кортов
	assert.Equal(t, DailyStat{Day: 3, Revenue: 80.0, Completed: 2}, resp.Daily[2])
	assert.Equal(t, DailyStat{Day: 10, Revenue: 25.0}, resp.Daily[9])
	assert.Equal(t, DailyStat{Day: 5}, resp.Daily[4])
}

func TestProviderMonthlyReport_NoVenues(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, &fakeVenueRepo{}, nopLogger{})

	resp, err := svc.ProviderMonthlyReport(context.Background(), &ProviderReportRequest{
		ProviderID: ownerID,
		Year:       2026,
		Month:      2,
	})
	require.NoError(t, err)

	assert.Empty(t, resp.VenueIDs)
	assert.Zero(t, resp.TotalBookings)
	assert.Zero(t, resp.TotalRevenue)
	assert.Len(t, resp.Daily, 28)
}

func TestProviderMonthlyReport_InvalidPeriod(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, &fakeVenueRepo{}, nopLogger{})

	_, err := svc.ProviderMonthlyReport(context.Background(), &ProviderReportRequest{
		ProviderID: ownerID,
		Year:       2026,
		Month:      13,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMonthlyReport_InvalidPeriod(t *testing.T) {
	svc := NewService(&fakeBookingRepo{}, &fakeVenueRepo{venue: ownedVenue()}, nopLogger{})

	tests := []struct {
		name        string
		year, month int
	}{
		{"month zero", 2026, 0},
		{"month thirteen", 2026, 13},
		{"year too small", 1999, 2},
		{"year too big", 2201, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.MonthlyReport(context.Background(), &MonthlyReportRequest{
				UserID:  ownerID,
				VenueID: 1,
				Year:    tt.year,
				Month:   tt.month,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
