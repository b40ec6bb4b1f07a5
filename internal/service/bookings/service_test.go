package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/CourtBookingService/internal/infra/storage/booking"
	venueRepo "github.com/m04kA/CourtBookingService/internal/infra/storage/venue"
	"github.com/m04kA/CourtBookingService/internal/service/bookings/models"
)

// Фейки

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	m := make(map[int64]*domain.Booking)
	for _, b := range bookings {
		m[b.ID] = b
	}
	return &fakeBookingRepo{bookings: m}
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByCustomerID(_ context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.CustomerID != customerID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) GetByVenueWithFilter(_ context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.VenueID != filter.VenueID {
			continue
		}
		if !filter.IncludeInactive && filter.Status == nil && b.IsCancelled() {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	b, ok := f.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	now := time.Now()
	b.Status = status
	b.CancellationReason = &reason
	b.CancelledAt = &now
	return nil
}

type fakeVenueRepo struct {
	venues map[int64]*domain.Venue
}

func (f *fakeVenueRepo) GetByID(_ context.Context, id int64) (*domain.Venue, error) {
	v, ok := f.venues[id]
	if !ok {
		return nil, venueRepo.ErrVenueNotFound
	}
	return v, nil
}

type fakeNotifyClient struct {
	sent chan string
}

func newFakeNotifyClient() *fakeNotifyClient {
	return &fakeNotifyClient{sent: make(chan string, 16)}
}

func (f *fakeNotifyClient) Send(_ context.Context, recipient, _, _ string) error {
	f.sent <- recipient
	return nil
}

// expectNotification ждет отправку уведомления и проверяет получателя
func expectNotification(t *testing.T, notify *fakeNotifyClient, recipient string) {
	t.Helper()
	select {
	case got := <-notify.sent:
		assert.Equal(t, recipient, got)
	case <-time.After(time.Second):
		t.Fatalf("notification to %s was not sent", recipient)
	}
}

// expectNoNotification проверяет, что уведомлений не было
func expectNoNotification(t *testing.T, notify *fakeNotifyClient) {
	t.Helper()
	select {
	case got := <-notify.sent:
		t.Fatalf("unexpected notification to %s", got)
	case <-time.After(50 * time.Millisecond):
	}
}

type stubTimeProvider struct {
	now time.Time
}

func (s *stubTimeProvider) Now() time.Time { return s.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Участники: клиент 100, владелец площадки 10, посторонний 999
const (
	customerID = int64(100)
	ownerID    = int64(10)
	strangerID = int64(999)
)

// Бронирование 2026-03-16 (понедельник) 10:00-11:00
var bookingDate = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

const (
	ownerEmail    = "owner@example.com"
	customerEmail = "ivan@example.com"
)

func activeBooking() *domain.Booking {
	email := customerEmail
	return &domain.Booking{
		ID:            1,
		VenueID:       1,
		CustomerID:    customerID,
		BookingDate:   bookingDate,
		StartTime:     "10:00",
		EndTime:       "11:00",
		CustomerEmail: &email,
		Status:        domain.StatusActive,
	}
}

func newService(booking *domain.Booking, now time.Time) (*Service, *fakeBookingRepo, *fakeNotifyClient) {
	repo := newFakeBookingRepo(booking)
	notify := newFakeNotifyClient()
	svc := NewService(
		repo,
		&fakeVenueRepo{venues: map[int64]*domain.Venue{
			1: {ID: 1, Name: "Центральный корт", OwnerID: ownerID, OwnerEmail: ownerEmail},
		}},
		notify,
		nopLogger{},
	)
	svc.timeProvider = &stubTimeProvider{now: now}
	return svc, repo, notify
}

// beforeStart возвращает момент времени за указанный интервал до начала бронирования (10:00)
func beforeStart(d time.Duration) time.Time {
	return time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC).Add(-d)
}

func TestCancel_CustomerNoticeBoundary(t *testing.T) {
	// Клиент: граница 3 часа входит в допустимый интервал
	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"3h01m before start - allowed", beforeStart(3*time.Hour + time.Minute), nil},
		{"exactly 3h before start - allowed", beforeStart(3 * time.Hour), nil},
		{"2h59m before start - rejected", beforeStart(2*time.Hour + 59*time.Minute), ErrTooLateToCancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, notify := newService(activeBooking(), tt.now)

			err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: customerID})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, domain.StatusActive, repo.bookings[1].Status)
				expectNoNotification(t, notify)
			} else {
				require.NoError(t, err)
				assert.Equal(t, domain.StatusCancelledByCustomer, repo.bookings[1].Status)
				// Об отмене клиентом уведомляется владелец площадки
				expectNotification(t, notify, ownerEmail)
			}
		})
	}
}

func TestCancel_OwnerNoticeBoundary(t *testing.T) {
	// Владелец: граница 3 часа уже НЕ входит - окно строго больше
	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"3h01m before start - allowed", beforeStart(3*time.Hour + time.Minute), nil},
		{"exactly 3h before start - rejected", beforeStart(3 * time.Hour), ErrTooLateToCancel},
		{"2h59m before start - rejected", beforeStart(2*time.Hour + 59*time.Minute), ErrTooLateToCancel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, notify := newService(activeBooking(), tt.now)

			err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: ownerID})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				expectNoNotification(t, notify)
			} else {
				require.NoError(t, err)
				assert.Equal(t, domain.StatusCancelledByVenue, repo.bookings[1].Status)
				// Об отмене площадкой уведомляется клиент
				expectNotification(t, notify, customerEmail)
			}
		})
	}
}

func TestCancel_Stranger(t *testing.T) {
	svc, _, _ := newService(activeBooking(), beforeStart(10*time.Hour))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: strangerID})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_NonActiveBooking(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusCompleted,
		domain.StatusCancelledByCustomer,
		domain.StatusCancelledByVenue,
	} {
		t.Run(string(status), func(t *testing.T) {
			b := activeBooking()
			b.Status = status
			svc, _, _ := newService(b, beforeStart(10*time.Hour))

			err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: customerID})
			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

func TestCancel_ReasonTooLong(t *testing.T) {
	svc, _, _ := newService(activeBooking(), beforeStart(10*time.Hour))

	longReason := make([]byte, domain.MaxCancellationReasonLength+1)
	for i := range longReason {
		longReason[i] = 'x'
	}

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             customerID,
		CancellationReason: string(longReason),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComplete(t *testing.T) {
	endAt := time.Date(2026, 3, 16, 11, 0, 0, 0, time.UTC)

	t.Run("owner completes finished booking", func(t *testing.T) {
		svc, repo, notify := newService(activeBooking(), endAt)

		require.NoError(t, svc.Complete(context.Background(), 1, ownerID))
		assert.Equal(t, domain.StatusCompleted, repo.bookings[1].Status)
		// О завершении уведомляется клиент
		expectNotification(t, notify, customerEmail)
	})

	t.Run("before booking end - rejected", func(t *testing.T) {
		svc, _, notify := newService(activeBooking(), endAt.Add(-time.Minute))

		err := svc.Complete(context.Background(), 1, ownerID)
		assert.ErrorIs(t, err, ErrNotFinishedYet)
		expectNoNotification(t, notify)
	})

	t.Run("customer cannot complete", func(t *testing.T) {
		svc, _, _ := newService(activeBooking(), endAt)

		err := svc.Complete(context.Background(), 1, customerID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("non-active booking - rejected", func(t *testing.T) {
		b := activeBooking()
		b.Status = domain.StatusCancelledByCustomer
		svc, _, _ := newService(b, endAt)

		err := svc.Complete(context.Background(), 1, ownerID)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("no customer email - transition succeeds without notification", func(t *testing.T) {
		b := activeBooking()
		b.CustomerEmail = nil
		svc, repo, notify := newService(b, endAt)

		require.NoError(t, svc.Complete(context.Background(), 1, ownerID))
		assert.Equal(t, domain.StatusCompleted, repo.bookings[1].Status)
		expectNoNotification(t, notify)
	})
}

func TestMarkNoShow(t *testing.T) {
	endAt := time.Date(2026, 3, 16, 11, 0, 0, 0, time.UTC)

	t.Run("collapses to venue cancellation with no_show reason", func(t *testing.T) {
		svc, repo, notify := newService(activeBooking(), endAt)

		require.NoError(t, svc.MarkNoShow(context.Background(), 1, ownerID))

		b := repo.bookings[1]
		assert.Equal(t, domain.StatusCancelledByVenue, b.Status)
		require.NotNil(t, b.CancellationReason)
		assert.Equal(t, domain.CancelReasonNoShow, *b.CancellationReason)
		assert.NotNil(t, b.CancelledAt)
		// О неявке уведомляется клиент
		expectNotification(t, notify, customerEmail)
	})

	t.Run("before booking end - rejected", func(t *testing.T) {
		svc, _, notify := newService(activeBooking(), endAt.Add(-time.Minute))

		err := svc.MarkNoShow(context.Background(), 1, ownerID)
		assert.ErrorIs(t, err, ErrNotFinishedYet)
		expectNoNotification(t, notify)
	})

	t.Run("customer cannot mark no-show", func(t *testing.T) {
		svc, _, _ := newService(activeBooking(), endAt)

		err := svc.MarkNoShow(context.Background(), 1, customerID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetByID_Access(t *testing.T) {
	svc, _, _ := newService(activeBooking(), time.Now())

	t.Run("customer sees own booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, customerID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("venue owner sees booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, ownerID)
		assert.NoError(t, err)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, strangerID)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 42, customerID)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetVenueBookings_OwnerOnly(t *testing.T) {
	svc, _, _ := newService(activeBooking(), time.Now())

	_, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{
		UserID:  strangerID,
		VenueID: 1,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{
		UserID:  ownerID,
		VenueID: 1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

func TestGetCustomerBookings_InvalidStatus(t *testing.T) {
	svc, _, _ := newService(activeBooking(), time.Now())

	bad := "running"
	_, err := svc.GetCustomerBookings(context.Background(), &models.GetCustomerBookingsRequest{
		CustomerID: customerID,
		Status:     &bad,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
