package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CourtBookingService/internal/domain"
	bookingRepo "github.com/m04kA/CourtBookingService/internal/infra/storage/booking"
	venueRepo "github.com/m04kA/CourtBookingService/internal/infra/storage/venue"
	"github.com/m04kA/CourtBookingService/internal/service/bookings/models"
)

// notifyTimeout максимальное время на отправку одного уведомления
const notifyTimeout = 5 * time.Second

// Service сервис для работы с жизненным циклом бронирований
type Service struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	notifyClient NotifyClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	notifyClient NotifyClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		venueRepo:    venueRepo,
		notifyClient: notifyClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - бронирование видят его клиент и владелец площадки
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetVenueBookings получает бронирования площадки с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отмененных бронирований
// Доступно только владельцу площадки
func (s *Service) GetVenueBookings(ctx context.Context, req *models.GetVenueBookingsRequest) (*models.BookingListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetVenueBookings: fetching bookings for venue=%d, user=%d", req.VenueID, req.UserID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права владельца площадки
	if err := s.checkOwnerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueBookings: invalid filter for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем бронирования с фильтрацией
	bookings, err := s.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueBookings: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueBookings: successfully fetched %d bookings for venue=%d", len(bookings), req.VenueID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование.
//
// Клиент может отменить свое бронирование не позднее чем за 3 часа до начала,
// граница входит в допустимый интервал: ровно за 3 часа отмена еще возможна.
// Владелец площадки может отменить бронирование строго более чем за 3 часа
// до начала: ровно за 3 часа владельцу уже нельзя. Окна намеренно несимметричны.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for booking id=%d", bookingID)
		return fmt.Errorf("%w: cancellation reason exceeds %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	// Получаем бронирование
	booking, err := s.getBooking(ctx, "Cancel", bookingID)
	if err != nil {
		return err
	}

	// Отменить можно только активное бронирование
	if !booking.IsActive() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	now := s.timeProvider.Now()
	untilStart := booking.StartAt().Sub(now)

	// Определяем статус отмены в зависимости от того, кто отменяет
	var cancelStatus domain.BookingStatus

	if booking.CustomerID == req.UserID {
		if untilStart < domain.CustomerCancelNotice {
			s.logger.Warn("Cancel: customer=%d too late to cancel booking id=%d, %s until start",
				req.UserID, bookingID, untilStart)
			return ErrTooLateToCancel
		}
		cancelStatus = domain.StatusCancelledByCustomer
	} else {
		// Не клиент - проверяем, что это владелец площадки
		if err := s.checkOwnerAccess(ctx, booking.VenueID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}
		if untilStart <= domain.VenueCancelNotice {
			s.logger.Warn("Cancel: venue owner=%d too late to cancel booking id=%d, %s until start",
				req.UserID, bookingID, untilStart)
			return ErrTooLateToCancel
		}
		cancelStatus = domain.StatusCancelledByVenue
	}

	// Отменяем бронирование
	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)

	// Уведомляем контрагента: об отмене клиентом - владельца, об отмене площадкой - клиента
	if cancelStatus == domain.StatusCancelledByCustomer {
		s.notifyOwnerCancelled(ctx, booking)
	} else {
		s.notifyCustomer(booking,
			"Бронирование отменено площадкой",
			fmt.Sprintf("Бронирование №%d на %s, %s-%s отменено площадкой",
				booking.ID, booking.BookingDate.Format(domain.DateFormat), booking.StartTime, booking.EndTime))
	}

	return nil
}

// Complete помечает бронирование завершенным
// Доступно только владельцу площадки и только после окончания бронирования
func (s *Service) Complete(ctx context.Context, bookingID int64, userID int64) error {
	s.logger.Info("Complete: completing booking id=%d by user=%d", bookingID, userID)

	booking, err := s.getBooking(ctx, "Complete", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkOwnerAccess(ctx, booking.VenueID, userID); err != nil {
		s.logger.Warn("Complete: access denied for user=%d to booking id=%d", userID, bookingID)
		return ErrAccessDenied
	}

	if !booking.IsActive() {
		s.logger.Warn("Complete: booking id=%d is not active, status=%s", bookingID, booking.Status)
		return ErrInvalidStatus
	}

	// Завершить можно только закончившееся бронирование
	if s.timeProvider.Now().Before(booking.EndAt()) {
		s.logger.Warn("Complete: booking id=%d has not finished yet", bookingID)
		return ErrNotFinishedYet
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusCompleted); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Complete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Complete: successfully completed booking id=%d", bookingID)

	s.notifyCustomer(booking,
		"Бронирование завершено",
		fmt.Sprintf("Бронирование №%d на %s, %s-%s отмечено завершенным",
			booking.ID, booking.BookingDate.Format(domain.DateFormat), booking.StartTime, booking.EndTime))

	return nil
}

// MarkNoShow помечает, что клиент не пришел на бронирование.
// Доступно только владельцу площадки и только после окончания бронирования.
// Неявка фиксируется как отмена со стороны площадки с причиной "no_show" -
// отдельного терминального статуса для нее нет.
func (s *Service) MarkNoShow(ctx context.Context, bookingID int64, userID int64) error {
	s.logger.Info("MarkNoShow: marking booking id=%d as no-show by user=%d", bookingID, userID)

	booking, err := s.getBooking(ctx, "MarkNoShow", bookingID)
	if err != nil {
		return err
	}

	if err := s.checkOwnerAccess(ctx, booking.VenueID, userID); err != nil {
		s.logger.Warn("MarkNoShow: access denied for user=%d to booking id=%d", userID, bookingID)
		return ErrAccessDenied
	}

	if !booking.IsActive() {
		s.logger.Warn("MarkNoShow: booking id=%d is not active, status=%s", bookingID, booking.Status)
		return ErrInvalidStatus
	}

	if s.timeProvider.Now().Before(booking.EndAt()) {
		s.logger.Warn("MarkNoShow: booking id=%d has not finished yet", bookingID)
		return ErrNotFinishedYet
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, domain.StatusCancelledByVenue, domain.CancelReasonNoShow); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("MarkNoShow: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkNoShow: successfully marked booking id=%d as no-show", bookingID)

	s.notifyCustomer(booking,
		"Неявка на бронирование",
		fmt.Sprintf("По бронированию №%d на %s, %s-%s зафиксирована неявка",
			booking.ID, booking.BookingDate.Format(domain.DateFormat), booking.StartTime, booking.EndTime))

	return nil
}

// Вспомогательные методы

// getBooking получает бронирование по ID с маппингом ошибок репозитория
func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Доступ есть у клиента бронирования и у владельца площадки
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.CustomerID == userID {
		return nil
	}

	if err := s.checkOwnerAccess(ctx, booking.VenueID, userID); err != nil {
		// Ошибка уже залогирована в checkOwnerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkOwnerAccess проверяет, что пользователь является владельцем площадки
func (s *Service) checkOwnerAccess(ctx context.Context, venueID int64, userID int64) error {
	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("checkOwnerAccess: venue id=%d not found", venueID)
			return ErrVenueNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get venue: %v", ErrInternal, err)
	}

	if !venue.IsOwnedBy(userID) {
		s.logger.Warn("checkOwnerAccess: user=%d is not the owner of venue=%d", userID, venueID)
		return ErrAccessDenied
	}

	return nil
}

// notifyCustomer отправляет клиенту уведомление о смене статуса его бронирования.
// Отправка идет в фоне, ошибка доставки только логируется.
func (s *Service) notifyCustomer(booking *domain.Booking, subject, body string) {
	if booking.CustomerEmail == nil || *booking.CustomerEmail == "" {
		s.logger.Warn("notifyCustomer: booking id=%d has no customer email, skipping notification", booking.ID)
		return
	}

	recipient := *booking.CustomerEmail

	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifyClient.Send(notifyCtx, recipient, subject, body); err != nil {
			s.logger.Error("notifyCustomer: failed to notify customer of booking id=%d: %v", booking.ID, err)
		}
	}()
}

// notifyOwnerCancelled уведомляет владельца площадки об отмене бронирования клиентом.
// Отправка идет в фоне, ошибка доставки только логируется.
func (s *Service) notifyOwnerCancelled(ctx context.Context, booking *domain.Booking) {
	venue, err := s.venueRepo.GetByID(ctx, booking.VenueID)
	if err != nil || venue.OwnerEmail == "" {
		s.logger.Warn("notifyOwnerCancelled: no owner email for venue id=%d, skipping notification", booking.VenueID)
		return
	}

	subject := fmt.Sprintf("Отмена бронирования: %s", venue.Name)
	body := fmt.Sprintf("Бронирование №%d на %s, %s-%s отменено клиентом",
		booking.ID, booking.BookingDate.Format(domain.DateFormat), booking.StartTime, booking.EndTime)

	go func() {
		notifyCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifyClient.Send(notifyCtx, venue.OwnerEmail, subject, body); err != nil {
			s.logger.Error("notifyOwnerCancelled: failed to notify owner of venue id=%d: %v", booking.VenueID, err)
		}
	}()
}
