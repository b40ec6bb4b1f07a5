package venues

import (
	"context"
	"errors"
	"fmt"

	venueRepo "github.com/m04kA/CourtBookingService/internal/infra/storage/venue"
	"github.com/m04kA/CourtBookingService/internal/service/venues/models"
)

// Service сервис для работы с расписаниями площадок
type Service struct {
	venueRepo VenueRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса площадок
func NewService(venueRepo VenueRepository, logger Logger) *Service {
	return &Service{
		venueRepo: venueRepo,
		logger:    logger,
	}
}

// GetSchedule возвращает расписание площадки
// Расписание публичное - авторизация не требуется
func (s *Service) GetSchedule(ctx context.Context, venueID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for venue=%d", venueID)

	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("GetSchedule: venue id=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("GetSchedule: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(venue.ID, venue.Schedule), nil
}

// UpdateSchedule полностью заменяет расписание площадки
// Доступно только владельцу площадки
func (s *Service) UpdateSchedule(ctx context.Context, venueID int64, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: updating schedule for venue=%d by user=%d", venueID, req.UserID)

	venue, err := s.venueRepo.GetByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("UpdateSchedule: venue id=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("UpdateSchedule: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	if !venue.IsOwnedBy(req.UserID) {
		s.logger.Warn("UpdateSchedule: user=%d is not the owner of venue=%d", req.UserID, venueID)
		return nil, ErrAccessDenied
	}

	schedule, err := req.ToDomainSchedule()
	if err != nil {
		s.logger.Warn("UpdateSchedule: invalid schedule for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.venueRepo.UpdateSchedule(ctx, venueID, schedule); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			return nil, ErrVenueNotFound
		}
		s.logger.Error("UpdateSchedule: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: successfully updated schedule for venue=%d", venueID)
	return models.FromDomainSchedule(venueID, schedule), nil
}
