package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/dormclub/ReservationService/internal/domain"
	"github.com/dormclub/ReservationService/pkg/dbmetrics"
	"github.com/dormclub/ReservationService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникальности
const uniqueViolation = "23505"

var eventColumns = []string{
	"id",
	"purpose",
	"guests",
	"email",
	"start_datetime",
	"end_datetime",
	"event_state",
	"user_id",
	"calendar_id",
	"additional_services",
	"deleted_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с событиями (бронированиями)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое событие
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("events").
		Columns(
			"id",
			"purpose",
			"guests",
			"email",
			"start_datetime",
			"end_datetime",
			"event_state",
			"user_id",
			"calendar_id",
			"additional_services",
		).
		Values(
			event.ID,
			event.Purpose,
			event.Guests,
			event.Email,
			event.StartDatetime,
			event.EndDatetime,
			event.State,
			event.UserID,
			event.CalendarID,
			pq.Array(event.AdditionalServices),
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrEventAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	event.CreatedAt = createdAt.Time
	event.UpdatedAt = updatedAt.Time

	return event, nil
}

// GetByID получает событие по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	event, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan event: %v", ErrScanRow, err)
	}

	return event, nil
}

// GetByUserID получает список событий пользователя (новые первыми)
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("start_datetime DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetByStateAndCalendarIDs получает события в заданном состоянии
// на любом из перечисленных календарей
func (r *Repository) GetByStateAndCalendarIDs(ctx context.Context, state domain.EventState, calendarIDs []string) ([]*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"event_state": state}).
		Where(squirrel.Eq{"calendar_id": calendarIDs}).
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("start_datetime ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByStateAndCalendarIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStateAndCalendarIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// GetCurrentForUser получает текущее событие пользователя,
// у которого время now находится между началом и концом
func (r *Repository) GetCurrentForUser(ctx context.Context, userID int64, now time.Time) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From("events").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.LtOrEq{"start_datetime": now}).
		Where(squirrel.GtOrEq{"end_datetime": now}).
		Where(squirrel.NotEq{"event_state": domain.StateCanceled}).
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("start_datetime ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrentForUser - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	event, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrentForUser - scan event: %v", ErrScanRow, err)
	}

	return event, nil
}

// UpdateState обновляет состояние события
func (r *Repository) UpdateState(ctx context.Context, id string, state domain.EventState) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("events").
		Set("event_state", state).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateState - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateState")
}

// UpdateTime обновляет время события и его состояние
func (r *Repository) UpdateTime(ctx context.Context, id string, start, end time.Time, state domain.EventState) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("events").
		Set("start_datetime", start).
		Set("end_datetime", end).
		Set("event_state", state).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateTime - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateTime")
}

// SoftRemove помечает событие удаленным
func (r *Repository) SoftRemove(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("events").
		Set("deleted_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftRemove - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SoftRemove")
}

// execExpectingRow выполняет запрос и требует, чтобы была затронута хотя бы одна строка
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// scanEvent сканирует одну строку результата в событие
func scanEvent(scan func(dest ...interface{}) error) (*domain.Event, error) {
	var event domain.Event
	var deletedAt, createdAt, updatedAt sql.NullTime
	var additionalServices pq.StringArray

	err := scan(
		&event.ID,
		&event.Purpose,
		&event.Guests,
		&event.Email,
		&event.StartDatetime,
		&event.EndDatetime,
		&event.State,
		&event.UserID,
		&event.CalendarID,
		&additionalServices,
		&deletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	event.AdditionalServices = []string(additionalServices)
	if deletedAt.Valid {
		event.DeletedAt = &deletedAt.Time
	}
	event.CreatedAt = createdAt.Time
	event.UpdatedAt = updatedAt.Time

	return &event, nil
}

// scanEvents сканирует результаты запроса в слайс событий
func scanEvents(rows *sql.Rows) ([]*domain.Event, error) {
	events := make([]*domain.Event, 0)

	for rows.Next() {
		event, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanEvents - scan row: %v", ErrScanRow, err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEvents - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}
