package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CourtBookingService/internal/domain"
	venueRepo "github.com/m04kA/CourtBookingService/internal/infra/storage/venue"
)

// notifyTimeout максимальное время на отправку одного уведомления
const notifyTimeout = 5 * time.Second

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	notifyClient NotifyClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	notifyClient NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueRepo:    venueRepo,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// проверка пересечений и вставка выполняются атомарно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, venue=%d, date=%s, time=%s-%s",
		req.CustomerID, req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Бронирование должно начинаться в будущем
	startAt := req.Date.Add(time.Duration(req.StartTime.Minutes()) * time.Minute)
	if !uc.timeProvider.Now().Before(startAt) {
		uc.logger.Warn("CreateBooking: slot %s %s is in the past",
			req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, fmt.Errorf("%w: booking must start in the future", ErrInvalidInput)
	}

	// 3. Получаем площадку вместе с расписанием и базовой ценой
	venue, err := uc.venueRepo.GetByID(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("CreateBooking: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateBooking: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 4. Проверяем, что площадка открыта в этот день
	if venue.Schedule.IsClosedOn(req.Date) {
		uc.logger.Warn("CreateBooking: venue id=%d is closed on %s",
			req.VenueID, req.Date.Format(domain.DateFormat))
		return nil, ErrVenueClosed
	}

	// 5. Вычисляем итоговую цену: запрос -> базовая цена площадки -> не задана
	total := resolveTotal(req.Total, venue)

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем все блокирующие бронирования на эту дату с блокировкой (FOR UPDATE)
		filter := domain.VenueBookingsFilter{
			VenueID:         req.VenueID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeInactive: false, // Отмененные бронирования слот не блокируют
		}

		bookings, err := uc.bookingRepo.GetByVenueWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.2. Проверяем пересечение с существующими бронированиями
		if conflict := findConflictingBooking(req.StartTime, req.EndTime, bookings); conflict != nil {
			uc.logger.Warn("CreateBooking: slot %s-%s conflicts with booking id=%d (%s-%s)",
				req.StartTime, req.EndTime, conflict.ID, conflict.StartTime, conflict.EndTime)
			return ErrSlotConflict
		}

		// 6.3. Создаем бронирование
		booking := &domain.Booking{
			VenueID:       req.VenueID,
			CustomerID:    req.CustomerID,
			BookingDate:   req.Date,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
			PaymentMethod: req.PaymentMethod,
			Total:         total,
			Status:        domain.StatusActive,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 7. Уведомляем владельца площадки в фоне - ошибка доставки не влияет на результат
	uc.notifyOwner(venue, result)

	// Конвертируем в response
	return &Response{
		ID:            result.ID,
		VenueID:       result.VenueID,
		CustomerID:    result.CustomerID,
		BookingDate:   result.BookingDate,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		CustomerName:  result.CustomerName,
		CustomerPhone: result.CustomerPhone,
		CustomerEmail: result.CustomerEmail,
		PaymentMethod: result.PaymentMethod,
		Total:         result.Total,
		Status:        string(result.Status),
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

// notifyOwner отправляет владельцу площадки уведомление о новом бронировании.
// Отправка идет в отдельной горутине с собственным контекстом:
// HTTP-ответ клиенту не ждет сервис уведомлений.
func (uc *UseCase) notifyOwner(venue *domain.Venue, booking *domain.Booking) {
	if venue.OwnerEmail == "" {
		uc.logger.Warn("CreateBooking: venue id=%d has no owner email, skipping notification", venue.ID)
		return
	}

	subject := fmt.Sprintf("Новое бронирование: %s", venue.Name)
	body := fmt.Sprintf("Бронирование №%d: %s, %s-%s, клиент %s",
		booking.ID, booking.BookingDate.Format(domain.DateFormat),
		booking.StartTime, booking.EndTime, booking.CustomerName)

	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := uc.notifyClient.Send(notifyCtx, venue.OwnerEmail, subject, body); err != nil {
			uc.logger.Error("CreateBooking: failed to notify owner of venue id=%d about booking id=%d: %v",
				venue.ID, booking.ID, err)
		}
	}()
}
