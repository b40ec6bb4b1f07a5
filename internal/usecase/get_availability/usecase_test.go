package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CourtBookingService/internal/domain"
	venueRepo "github.com/m04kA/CourtBookingService/internal/infra/storage/venue"
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

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetByVenueWithFilter(_ context.Context, _ domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2026-03-16 - понедельник
var monday = time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

func testVenue(schedule domain.Schedule) *domain.Venue {
	return &domain.Venue{
		ID:       1,
		Name:     "Центральный корт",
		OwnerID:  10,
		Schedule: schedule,
	}
}

func mondaySchedule(windows ...types.Window) domain.Schedule {
	s := domain.EmptySchedule()
	s.WeeklyWindows[1] = windows
	return s
}

func activeBooking(start, end types.TimeString) *domain.Booking {
	return &domain.Booking{
		VenueID:     1,
		BookingDate: monday,
		StartTime:   start,
		EndTime:     end,
		Status:      domain.StatusActive,
	}
}

func TestExecute_FreeDay(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeVenueRepo{venue: testVenue(mondaySchedule(types.Window{Start: "09:00", End: "12:00"}))},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: monday})
	require.NoError(t, err)

	assert.False(t, resp.Closed)
	require.Len(t, resp.Slots, 3)
	for _, slot := range resp.Slots {
		assert.Equal(t, domain.SlotFree, slot.Status)
	}
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].Start)
	assert.Equal(t, types.TimeString("12:00"), resp.Slots[2].End)
}

func TestExecute_ReservedSlots(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{
			activeBooking("10:00", "11:00"),
		}},
		&fakeVenueRepo{venue: testVenue(mondaySchedule(types.Window{Start: "09:00", End: "12:00"}))},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)

	// Граничащие слоты свободны, накрытый - занят
	assert.Equal(t, domain.SlotFree, resp.Slots[0].Status)
	assert.Equal(t, domain.SlotReserved, resp.Slots[1].Status)
	assert.Equal(t, domain.SlotFree, resp.Slots[2].Status)
}

func TestExecute_PartialOverlapReservesBothSlots(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{
			activeBooking("10:30", "11:30"),
		}},
		&fakeVenueRepo{venue: testVenue(mondaySchedule(types.Window{Start: "09:00", End: "13:00"}))},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	assert.Equal(t, domain.SlotFree, resp.Slots[0].Status)     // 09:00-10:00
	assert.Equal(t, domain.SlotReserved, resp.Slots[1].Status) // 10:00-11:00
	assert.Equal(t, domain.SlotReserved, resp.Slots[2].Status) // 11:00-12:00
	assert.Equal(t, domain.SlotFree, resp.Slots[3].Status)     // 12:00-13:00
}

func TestExecute_CancelledBookingDoesNotReserve(t *testing.T) {
	cancelled := activeBooking("10:00", "11:00")
	cancelled.Status = domain.StatusCancelledByCustomer

	completed := activeBooking("09:00", "10:00")
	completed.Status = domain.StatusCompleted

	uc := NewUseCase(
		&fakeBookingRepo{bookings: []*domain.Booking{cancelled, completed}},
		&fakeVenueRepo{venue: testVenue(mondaySchedule(types.Window{Start: "09:00", End: "12:00"}))},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)

	// Завершенное бронирование занимает слот, отмененное - нет
	assert.Equal(t, domain.SlotReserved, resp.Slots[0].Status)
	assert.Equal(t, domain.SlotFree, resp.Slots[1].Status)
}

func TestExecute_GenerationOrderFollowsWindows(t *testing.T) {
	// Окна заданы не по возрастанию - порядок генерации сохраняется
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeVenueRepo{venue: testVenue(mondaySchedule(
			types.Window{Start: "16:00", End: "18:00"},
			types.Window{Start: "08:00", End: "10:00"},
		))},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: monday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	assert.Equal(t, types.TimeString("16:00"), resp.Slots[0].Start)
	assert.Equal(t, types.TimeString("17:00"), resp.Slots[1].Start)
	assert.Equal(t, types.TimeString("08:00"), resp.Slots[2].Start)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[3].Start)
}

func TestExecute_ClosedDate(t *testing.T) {
	schedule := mondaySchedule(types.Window{Start: "09:00", End: "18:00"})
	schedule.ClosedDates[monday.Format(domain.DateFormat)] = true

	uc := NewUseCase(&fakeBookingRepo{}, &fakeVenueRepo{venue: testVenue(schedule)}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: monday})
	require.NoError(t, err)

	assert.True(t, resp.Closed)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ClosedWeekday(t *testing.T) {
	schedule := mondaySchedule(types.Window{Start: "09:00", End: "18:00"})
	schedule.ClosedWeekdays[1] = true

	uc := NewUseCase(&fakeBookingRepo{}, &fakeVenueRepo{venue: testVenue(schedule)}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: monday})
	require.NoError(t, err)

	assert.True(t, resp.Closed)
	assert.Empty(t, resp.Slots)
}

func TestExecute_OpenDayWithoutWindows(t *testing.T) {
	// День не закрыт, но окон нет: пустой список слотов, Closed=false
	uc := NewUseCase(&fakeBookingRepo{}, &fakeVenueRepo{venue: testVenue(domain.EmptySchedule())}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: monday})
	require.NoError(t, err)

	assert.False(t, resp.Closed)
	assert.Empty(t, resp.Slots)
}

func TestExecute_CustomSlotMinutes(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeVenueRepo{venue: testVenue(mondaySchedule(types.Window{Start: "09:00", End: "10:30"}))},
		nopLogger{},
	)

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: monday, SlotMinutes: 30})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, types.TimeString("09:30"), resp.Slots[1].Start)
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeVenueRepo{err: venueRepo.ErrVenueNotFound}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VenueID: 42, Date: monday})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeVenueRepo{}, nopLogger{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero venue id", &Request{VenueID: 0, Date: monday}},
		{"negative venue id", &Request{VenueID: -5, Date: monday}},
		{"zero date", &Request{VenueID: 1}},
		{"slot minutes too small", &Request{VenueID: 1, Date: monday, SlotMinutes: 4}},
		{"slot minutes too big", &Request{VenueID: 1, Date: monday, SlotMinutes: 481}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
