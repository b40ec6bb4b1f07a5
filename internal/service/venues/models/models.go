package models

import (
	"fmt"
	"time"

	"github.com/m04kA/CourtBookingService/internal/domain"
	"github.com/m04kA/CourtBookingService/pkg/types"
)

// Request модели

// WindowPayload рабочее окно в запросе/ответе, времена в формате "HH:MM"
type WindowPayload struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// UpdateScheduleRequest запрос на полную замену расписания площадки
type UpdateScheduleRequest struct {
	UserID         int64                   `json:"userId"`
	WeeklyWindows  map[int][]WindowPayload `json:"weeklyWindows"`  // Ключ - день недели, 0 = воскресенье
	ClosedWeekdays []int                   `json:"closedWeekdays"` // Выходные дни недели
	ClosedDates    []string                `json:"closedDates"`    // Закрытые даты "2026-03-15"
}

// Response модели

// ScheduleResponse ответ с расписанием площадки
type ScheduleResponse struct {
	VenueID        int64                   `json:"venueId"`
	WeeklyWindows  map[int][]WindowPayload `json:"weeklyWindows"`
	ClosedWeekdays []int                   `json:"closedWeekdays"`
	ClosedDates    []string                `json:"closedDates"`
}

// Методы конвертации

// FromDomainSchedule конвертирует domain расписание в DTO
func FromDomainSchedule(venueID int64, s domain.Schedule) *ScheduleResponse {
	weekly := make(map[int][]WindowPayload, len(s.WeeklyWindows))
	for weekday, windows := range s.WeeklyWindows {
		payload := make([]WindowPayload, len(windows))
		for i, w := range windows {
			payload[i] = WindowPayload{
				Start: w.Start.String(),
				End:   w.End.String(),
			}
		}
		weekly[weekday] = payload
	}

	return &ScheduleResponse{
		VenueID:        venueID,
		WeeklyWindows:  weekly,
		ClosedWeekdays: s.ClosedWeekdayList(),
		ClosedDates:    s.ClosedDateList(),
	}
}

// ToDomainSchedule конвертирует запрос в domain расписание с валидацией
func (r *UpdateScheduleRequest) ToDomainSchedule() (domain.Schedule, error) {
	schedule := domain.EmptySchedule()

	for weekday, windows := range r.WeeklyWindows {
		if weekday < 0 || weekday > 6 {
			return schedule, ErrInvalidWeekday
		}

		for _, w := range windows {
			window, err := toDomainWindow(w)
			if err != nil {
				return schedule, err
			}
			schedule.WeeklyWindows[weekday] = append(schedule.WeeklyWindows[weekday], window)
		}
	}

	for _, weekday := range r.ClosedWeekdays {
		if weekday < 0 || weekday > 6 {
			return schedule, ErrInvalidWeekday
		}
		schedule.ClosedWeekdays[weekday] = true
	}

	for _, date := range r.ClosedDates {
		if _, err := time.Parse(domain.DateFormat, date); err != nil {
			return schedule, ErrInvalidDate
		}
		schedule.ClosedDates[date] = true
	}

	return schedule, nil
}

// toDomainWindow конвертирует окно из запроса с валидацией формата и порядка времен
func toDomainWindow(w WindowPayload) (types.Window, error) {
	start, err := types.NewTimeStringFromString(w.Start)
	if err != nil {
		return types.Window{}, fmt.Errorf("%w: invalid start time %q", ErrInvalidWindow, w.Start)
	}

	end, err := types.NewTimeStringFromString(w.End)
	if err != nil {
		return types.Window{}, fmt.Errorf("%w: invalid end time %q", ErrInvalidWindow, w.End)
	}

	if !start.IsBefore(end) {
		return types.Window{}, fmt.Errorf("%w: start %q must be before end %q", ErrInvalidWindow, w.Start, w.End)
	}

	return types.Window{Start: start, End: end}, nil
}
