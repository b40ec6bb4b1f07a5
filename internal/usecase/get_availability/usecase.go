package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CourtBookingService/internal/domain"
	venueRepo "github.com/m04kA/CourtBookingService/internal/infra/storage/venue"
)

// UseCase use case для расчета доступности площадки на дату
type UseCase struct {
	bookingRepo BookingRepository
	venueRepo   VenueRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		logger:      logger,
	}
}

// Execute выполняет use case расчета доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: venue=%d, date=%s, slot_minutes=%d",
		req.VenueID, req.Date.Format(domain.DateFormat), req.SlotMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Длительность слота по умолчанию
	slotMinutes := req.SlotMinutes
	if slotMinutes == 0 {
		slotMinutes = domain.DefaultSlotMinutes
	}

	// 3. Получаем площадку вместе с расписанием
	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("GetAvailability: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetAvailability: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 4. Проверяем закрытие: выходной день недели или конкретная закрытая дата.
	// Закрытие имеет приоритет над любыми рабочими окнами на этот день.
	if venue.Schedule.IsClosedOn(req.Date) {
		uc.logger.Info("GetAvailability: venue id=%d is closed on %s",
			req.VenueID, req.Date.Format(domain.DateFormat))
		return &Response{
			VenueID: req.VenueID,
			Date:    req.Date,
			Closed:  true,
			Slots:   []domain.Slot{},
		}, nil
	}

	// 5. Генерируем слоты из рабочих окон дня недели
	windows := venue.Schedule.WindowsFor(int(req.Date.Weekday()))
	slots := generateSlots(windows, slotMinutes)

	// Открытый день без окон - пустой список, но не "закрыто"
	if len(slots) == 0 {
		uc.logger.Info("GetAvailability: venue id=%d has no bookable windows on %s",
			req.VenueID, req.Date.Format(domain.DateFormat))
		return &Response{
			VenueID: req.VenueID,
			Date:    req.Date,
			Closed:  false,
			Slots:   slots,
		}, nil
	}

	// 6. Получаем блокирующие бронирования на эту дату
	filter := domain.VenueBookingsFilter{
		VenueID:         req.VenueID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Отмененные бронирования слоты не занимают
	}

	bookings, err := uc.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 7. Помечаем занятые слоты
	slots = markReservedSlots(slots, bookings)

	uc.logger.Info("GetAvailability: generated %d slots for venue=%d, date=%s",
		len(slots), req.VenueID, req.Date.Format(domain.DateFormat))

	return &Response{
		VenueID: req.VenueID,
		Date:    req.Date,
		Closed:  false,
		Slots:   slots,
	}, nil
}
