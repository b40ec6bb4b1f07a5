package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CourtBookingService/internal/domain"
	venueRepo "github.com/m04kA/CourtBookingService/internal/infra/storage/venue"
	"github.com/m04kA/CourtBookingService/pkg/ptr"
	"github.com/m04kA/CourtBookingService/pkg/types"
)

// Фейки

type fakeVenueRepo struct {
	venue *domain.Venue
	err   error
}

func (f *fakeVenueRepo) GetByID(_ context.Context, _ int64) (*domain.Venue, error) {
	return f.venue, f.err
}

// fakeBookingRepo хранит бронирования в памяти; потокобезопасность
// обеспечивает fakeTxManager, сериализующий транзакции мьютексом
type fakeBookingRepo struct {
	bookings []*domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) GetByVenueWithFilter(_ context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.VenueID != filter.VenueID {
			continue
		}
		if !filter.IncludeInactive && b.IsCancelled() {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	f.bookings = append(f.bookings, booking)
	return booking, nil
}

// fakeTxManager имитирует сериализуемую транзакцию, выполняя функции строго по одной
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
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

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2026-03-16 - понедельник
var monday = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

// Текущий момент в тестах - за две недели до даты бронирования
var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func openVenue() *domain.Venue {
	schedule := domain.EmptySchedule()
	schedule.WeeklyWindows[1] = []types.Window{{Start: "08:00", End: "22:00"}}
	return &domain.Venue{
		ID:         1,
		Name:       "Центральный корт",
		OwnerID:    10,
		OwnerEmail: "owner@example.com",
		BasePrice:  ptr.Ptr(25.0),
		Schedule:   schedule,
	}
}

func validRequest() *Request {
	return &Request{
		CustomerID:   100,
		VenueID:      1,
		Date:         monday,
		StartTime:    "10:00",
		EndTime:      "11:00",
		CustomerName: "Иван Петров",
	}
}

func newUseCase(venue *domain.Venue, repo *fakeBookingRepo, notify *fakeNotifyClient) *UseCase {
	uc := NewUseCase(repo, &fakeVenueRepo{venue: venue}, notify, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}
	return uc
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeBookingRepo{}
	notify := newFakeNotifyClient()
	uc := newUseCase(openVenue(), repo, notify)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusActive), resp.Status)
	require.Len(t, repo.bookings, 1)

	// Владелец уведомляется в фоне
	select {
	case recipient := <-notify.sent:
		assert.Equal(t, "owner@example.com", recipient)
	case <-time.After(time.Second):
		t.Fatal("owner notification was not sent")
	}
}

func TestExecute_TotalFallback(t *testing.T) {
	t.Run("request total wins over base price", func(t *testing.T) {
		uc := newUseCase(openVenue(), &fakeBookingRepo{}, newFakeNotifyClient())

		req := validRequest()
		req.Total = ptr.Ptr(40.0)

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, resp.Total)
		assert.Equal(t, 40.0, *resp.Total)
	})

	t.Run("base price used when request has no total", func(t *testing.T) {
		uc := newUseCase(openVenue(), &fakeBookingRepo{}, newFakeNotifyClient())

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		require.NotNil(t, resp.Total)
		assert.Equal(t, 25.0, *resp.Total)
	})

	t.Run("nil when venue has no base price either", func(t *testing.T) {
		venue := openVenue()
		venue.BasePrice = nil
		uc := newUseCase(venue, &fakeBookingRepo{}, newFakeNotifyClient())

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Nil(t, resp.Total)
	})
}

func TestExecute_SlotConflict(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newUseCase(openVenue(), repo, newFakeNotifyClient())

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	tests := []struct {
		name       string
		start, end types.TimeString
		wantErr    error
	}{
		{"identical interval", "10:00", "11:00", ErrSlotConflict},
		{"overlap from left", "09:30", "10:30", ErrSlotConflict},
		{"overlap from right", "10:30", "11:30", ErrSlotConflict},
		{"covering interval", "09:00", "12:00", ErrSlotConflict},
		{"adjacent before is allowed", "09:00", "10:00", nil},
		{"adjacent after is allowed", "11:00", "12:00", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			req.StartTime = tt.start
			req.EndTime = tt.end

			_, err := uc.Execute(context.Background(), req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newUseCase(openVenue(), repo, newFakeNotifyClient())

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	repo.bookings[0].Status = domain.StatusCancelledByCustomer

	_, err = uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_VenueClosed(t *testing.T) {
	venue := openVenue()
	venue.Schedule.ClosedDates[monday.Format(domain.DateFormat)] = true
	uc := newUseCase(venue, &fakeBookingRepo{}, newFakeNotifyClient())

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVenueClosed)
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeVenueRepo{err: venueRepo.ErrVenueNotFound},
		newFakeNotifyClient(), &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_PastBooking(t *testing.T) {
	tests := []struct {
		name    string
		now     time.Time
		wantErr bool
	}{
		{"date long past", monday.AddDate(0, 1, 0), true},
		{"slot already started", monday.Add(10*time.Hour + 30*time.Minute), true},
		{"slot starts exactly now", monday.Add(10 * time.Hour), true},
		{"slot starts in a minute", monday.Add(9*time.Hour + 59*time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(openVenue(), &fakeBookingRepo{}, newFakeNotifyClient())
			uc.timeProvider = &fakeTimeProvider{now: tt.now}

			_, err := uc.Execute(context.Background(), validRequest())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(openVenue(), &fakeBookingRepo{}, newFakeNotifyClient())

	mutations := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero customer id", func(r *Request) { r.CustomerID = 0 }},
		{"zero venue id", func(r *Request) { r.VenueID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty start time", func(r *Request) { r.StartTime = "" }},
		{"empty end time", func(r *Request) { r.EndTime = "" }},
		{"malformed start time", func(r *Request) { r.StartTime = "25:00" }},
		{"start equals end", func(r *Request) { r.EndTime = r.StartTime }},
		{"start after end", func(r *Request) { r.StartTime = "12:00"; r.EndTime = "11:00" }},
		{"blank customer name", func(r *Request) { r.CustomerName = "   " }},
		{"negative total", func(r *Request) { r.Total = ptr.Ptr(-1.0) }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ConcurrentRequestsSameSlot(t *testing.T) {
	const workers = 20

	repo := &fakeBookingRepo{}
	uc := newUseCase(openVenue(), repo, newFakeNotifyClient())

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(customerID int64) {
			defer wg.Done()
			req := validRequest()
			req.CustomerID = customerID
			_, err := uc.Execute(context.Background(), req)
			results <- err
		}(int64(100 + i))
	}

	wg.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrSlotConflict):
			conflicted++
		}
	}

	// Слот достается ровно одному клиенту
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, conflicted)
	assert.Len(t, repo.bookings, 1)
}
