package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/dormclub/ReservationService/internal/domain"
	"github.com/dormclub/ReservationService/pkg/dbmetrics"
	"github.com/dormclub/ReservationService/pkg/psqlbuilder"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникальности
const uniqueViolation = "23505"

var calendarColumns = []string{
	"id",
	"reservation_type",
	"color",
	"max_people",
	"more_than_max_people_with_permission",
	"collision_with_itself",
	"collision_with_calendar",
	"mini_services",
	"club_member_rules",
	"active_member_rules",
	"manager_rules",
	"reservation_service_id",
	"deleted_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с календарями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория календарей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый календарь
func (r *Repository) Create(ctx context.Context, calendar *domain.Calendar) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("calendars").
		Columns(
			"id",
			"reservation_type",
			"color",
			"max_people",
			"more_than_max_people_with_permission",
			"collision_with_itself",
			"collision_with_calendar",
			"mini_services",
			"club_member_rules",
			"active_member_rules",
			"manager_rules",
			"reservation_service_id",
		).
		Values(
			calendar.ID,
			calendar.ReservationType,
			calendar.Color,
			calendar.MaxPeople,
			calendar.MoreThanMaxPeopleWithPermission,
			calendar.CollisionWithItself,
			pq.Array(calendar.CollisionWithCalendar),
			pq.Array(calendar.MiniServices),
			rulesJSON{Rules: calendar.ClubMemberRules},
			rulesJSON{Rules: calendar.ActiveMemberRules},
			rulesJSON{Rules: calendar.ManagerRules},
			calendar.ReservationServiceID,
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
			return nil, ErrCalendarAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	calendar.CreatedAt = createdAt.Time
	calendar.UpdatedAt = updatedAt.Time

	return calendar, nil
}

// GetByID получает календарь по ID
// includeRemoved включает в выборку мягко удаленные календари
func (r *Repository) GetByID(ctx context.Context, id string, includeRemoved bool) (*domain.Calendar, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, includeRemoved, "GetByID")
}

// GetByReservationType получает календарь по его типу бронирования
func (r *Repository) GetByReservationType(ctx context.Context, reservationType string, includeRemoved bool) (*domain.Calendar, error) {
	return r.getOne(ctx, squirrel.Eq{"reservation_type": reservationType}, includeRemoved, "GetByReservationType")
}

// GetByReservationServiceID получает все календари сервиса бронирования
func (r *Repository) GetByReservationServiceID(ctx context.Context, reservationServiceID int64, includeRemoved bool) ([]*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(calendarColumns...).
		From("calendars").
		Where(squirrel.Eq{"reservation_service_id": reservationServiceID}).
		OrderBy("reservation_type ASC")

	if !includeRemoved {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"deleted_at": nil})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservationServiceID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByReservationServiceID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanCalendars(rows)
}

// Update обновляет изменяемые поля календаря
func (r *Repository) Update(ctx context.Context, calendar *domain.Calendar) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("calendars").
		Set("reservation_type", calendar.ReservationType).
		Set("color", calendar.Color).
		Set("max_people", calendar.MaxPeople).
		Set("more_than_max_people_with_permission", calendar.MoreThanMaxPeopleWithPermission).
		Set("collision_with_itself", calendar.CollisionWithItself).
		Set("collision_with_calendar", pq.Array(calendar.CollisionWithCalendar)).
		Set("mini_services", pq.Array(calendar.MiniServices)).
		Set("club_member_rules", rulesJSON{Rules: calendar.ClubMemberRules}).
		Set("active_member_rules", rulesJSON{Rules: calendar.ActiveMemberRules}).
		Set("manager_rules", rulesJSON{Rules: calendar.ManagerRules}).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": calendar.ID}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Update")
}

// UpdateCollisions обновляет только набор коллизий календаря
// Используется административным слоем для поддержания симметрии отношения
func (r *Repository) UpdateCollisions(ctx context.Context, id string, collisions []string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("calendars").
		Set("collision_with_calendar", pq.Array(collisions)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateCollisions - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateCollisions")
}

// SoftRemove помечает календарь удаленным
func (r *Repository) SoftRemove(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("calendars").
		Set("deleted_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftRemove - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SoftRemove")
}

// Restore восстанавливает мягко удаленный календарь
func (r *Repository) Restore(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("calendars").
		Set("deleted_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"deleted_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Restore - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Restore")
}

// Remove физически удаляет календарь (только для главы секции)
func (r *Repository) Remove(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("calendars").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Remove - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Remove")
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, includeRemoved bool, op string) (*domain.Calendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(calendarColumns...).
		From("calendars").
		Where(where)

	if !includeRemoved {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"deleted_at": nil})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	calendar, err := scanCalendar(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrCalendarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan calendar: %v", ErrScanRow, op, err)
	}

	return calendar, nil
}

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
		return ErrCalendarNotFound
	}

	return nil
}

// scanCalendar сканирует одну строку результата в календарь
func scanCalendar(scan func(dest ...interface{}) error) (*domain.Calendar, error) {
	var calendar domain.Calendar
	var deletedAt, createdAt, updatedAt sql.NullTime
	var collisions, miniServices pq.StringArray
	var clubRules, activeRules, managerRules rulesJSON

	err := scan(
		&calendar.ID,
		&calendar.ReservationType,
		&calendar.Color,
		&calendar.MaxPeople,
		&calendar.MoreThanMaxPeopleWithPermission,
		&calendar.CollisionWithItself,
		&collisions,
		&miniServices,
		&clubRules,
		&activeRules,
		&managerRules,
		&calendar.ReservationServiceID,
		&deletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	calendar.CollisionWithCalendar = []string(collisions)
	calendar.MiniServices = []string(miniServices)
	calendar.ClubMemberRules = clubRules.Rules
	calendar.ActiveMemberRules = activeRules.Rules
	calendar.ManagerRules = managerRules.Rules
	if deletedAt.Valid {
		calendar.DeletedAt = &deletedAt.Time
	}
	calendar.CreatedAt = createdAt.Time
	calendar.UpdatedAt = updatedAt.Time

	return &calendar, nil
}

// scanCalendars сканирует результаты запроса в слайс календарей
func scanCalendars(rows *sql.Rows) ([]*domain.Calendar, error) {
	calendars := make([]*domain.Calendar, 0)

	for rows.Next() {
		calendar, err := scanCalendar(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanCalendars - scan row: %v", ErrScanRow, err)
		}
		calendars = append(calendars, calendar)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanCalendars - rows error: %v", ErrScanRow, err)
	}

	return calendars, nil
}
