package venue

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/CourtBookingService/internal/domain"
	"github.com/m04kA/CourtBookingService/pkg/dbmetrics"
	"github.com/m04kA/CourtBookingService/pkg/psqlbuilder"
)

// venueColumns полный список колонок таблицы venues в порядке сканирования
var venueColumns = []string{
	"id",
	"name",
	"owner_id",
	"owner_email",
	"base_price",
	"weekly_windows",
	"closed_weekdays",
	"closed_dates",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с площадками
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория площадок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает площадку по ID вместе с её расписанием.
// Колонки расписания хранятся как jsonb; кривые данные в них не
// приводят к ошибке - недекодируемые части расписания просто опускаются.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(venueColumns...).
		From("venues").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	venue, err := r.scanVenue(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrVenueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan venue: %v", ErrScanRow, err)
	}

	return venue, nil
}

// GetByOwnerID получает все площадки владельца
func (r *Repository) GetByOwnerID(ctx context.Context, ownerID int64) ([]*domain.Venue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(venueColumns...).
		From("venues").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		venue, err := r.scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByOwnerID - scan row: %v", ErrScanRow, err)
		}
		venues = append(venues, venue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByOwnerID - rows error: %v", ErrScanRow, err)
	}

	return venues, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanVenue(row rowScanner) (*domain.Venue, error) {
	var venue domain.Venue
	var weeklyRaw, closedWeekdaysRaw, closedDatesRaw []byte
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.OwnerID,
		&venue.OwnerEmail,
		&venue.BasePrice,
		&weeklyRaw,
		&closedWeekdaysRaw,
		&closedDatesRaw,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	venue.Schedule = domain.ParseSchedule(weeklyRaw, closedWeekdaysRaw, closedDatesRaw)
	venue.CreatedAt = createdAt.Time
	venue.UpdatedAt = updatedAt.Time

	return &venue, nil
}

// UpdateSchedule полностью заменяет расписание площадки
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, schedule domain.Schedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// map[int] маршалится в JSON объект со строковыми ключами -
	// тот же формат, который читает domain.ParseSchedule
	weeklyJSON, err := json.Marshal(schedule.WeeklyWindows)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - marshal weekly windows: %v", ErrMarshalSchedule, err)
	}

	closedWeekdaysJSON, err := json.Marshal(schedule.ClosedWeekdayList())
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - marshal closed weekdays: %v", ErrMarshalSchedule, err)
	}

	closedDatesJSON, err := json.Marshal(schedule.ClosedDateList())
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - marshal closed dates: %v", ErrMarshalSchedule, err)
	}

	query, args, err := psqlbuilder.Update("venues").
		Set("weekly_windows", weeklyJSON).
		Set("closed_weekdays", closedWeekdaysJSON).
		Set("closed_dates", closedDatesJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrVenueNotFound
	}

	return nil
}
