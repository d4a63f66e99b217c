package catalog

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

// DBExecutor интерфейс для выполнения SQL запросов
type DBExecutor = dbmetrics.DBExecutor

var serviceColumns = []string{
	"id",
	"name",
	"alias",
	"public",
	"web",
	"contact_mail",
	"access_group",
	"room_id",
	"lockers_id",
	"deleted_at",
	"created_at",
	"updated_at",
}

var miniServiceColumns = []string{
	"id",
	"name",
	"access_group",
	"room_id",
	"lockers_id",
	"reservation_service_id",
	"deleted_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с сервисами бронирования и мини-сервисами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateService создает новый сервис бронирования
func (r *Repository) CreateService(ctx context.Context, service *domain.ReservationService) (*domain.ReservationService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservation_services").
		Columns("name", "alias", "public", "web", "contact_mail", "access_group", "room_id", "lockers_id").
		Values(
			service.Name,
			service.Alias,
			service.Public,
			service.Web,
			service.ContactMail,
			service.AccessGroup,
			service.RoomID,
			pq.Array(service.LockersID),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&service.ID, &createdAt, &updatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("%w: CreateService - execute insert: %v", ErrExecQuery, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return service, nil
}

// GetServiceByID получает сервис бронирования по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.ReservationService, error) {
	return r.getService(ctx, squirrel.Eq{"id": id}, "GetServiceByID")
}

// GetServiceByAlias получает сервис бронирования по алиасу
func (r *Repository) GetServiceByAlias(ctx context.Context, alias string) (*domain.ReservationService, error) {
	return r.getService(ctx, squirrel.Eq{"alias": alias}, "GetServiceByAlias")
}

// ListServices получает все сервисы бронирования
// publicOnly ограничивает выборку публичными сервисами
func (r *Repository) ListServices(ctx context.Context, publicOnly bool) ([]*domain.ReservationService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(serviceColumns...).
		From("reservation_services").
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("name ASC")

	if publicOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"public": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.ReservationService, 0)
	for rows.Next() {
		service, err := scanService(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// SoftRemoveService помечает сервис бронирования удаленным
func (r *Repository) SoftRemoveService(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservation_services").
		Set("deleted_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftRemoveService - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftRemoveService - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SoftRemoveService - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// CreateMiniService создает новый мини-сервис
func (r *Repository) CreateMiniService(ctx context.Context, miniService *domain.MiniService) (*domain.MiniService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("mini_services").
		Columns("name", "access_group", "room_id", "lockers_id", "reservation_service_id").
		Values(
			miniService.Name,
			miniService.AccessGroup,
			miniService.RoomID,
			pq.Array(miniService.LockersID),
			miniService.ReservationServiceID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateMiniService - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&miniService.ID, &createdAt, &updatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("%w: CreateMiniService - execute insert: %v", ErrExecQuery, err)
	}

	miniService.CreatedAt = createdAt.Time
	miniService.UpdatedAt = updatedAt.Time

	return miniService, nil
}

// GetMiniServiceNamesByServiceID получает имена мини-сервисов сервиса бронирования
func (r *Repository) GetMiniServiceNamesByServiceID(ctx context.Context, reservationServiceID int64) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("name").
		From("mini_services").
		Where(squirrel.Eq{"reservation_service_id": reservationServiceID}).
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetMiniServiceNamesByServiceID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMiniServiceNamesByServiceID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: GetMiniServiceNamesByServiceID - scan name: %v", ErrScanRow, err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetMiniServiceNamesByServiceID - rows error: %v", ErrScanRow, err)
	}

	return names, nil
}

// ListMiniServicesByServiceID получает мини-сервисы сервиса бронирования
func (r *Repository) ListMiniServicesByServiceID(ctx context.Context, reservationServiceID int64) ([]*domain.MiniService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(miniServiceColumns...).
		From("mini_services").
		Where(squirrel.Eq{"reservation_service_id": reservationServiceID}).
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListMiniServicesByServiceID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListMiniServicesByServiceID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	miniServices := make([]*domain.MiniService, 0)
	for rows.Next() {
		miniService, err := scanMiniService(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListMiniServicesByServiceID - scan row: %v", ErrScanRow, err)
		}
		miniServices = append(miniServices, miniService)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListMiniServicesByServiceID - rows error: %v", ErrScanRow, err)
	}

	return miniServices, nil
}

func (r *Repository) getService(ctx context.Context, where squirrel.Eq, op string) (*domain.ReservationService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("reservation_services").
		Where(where).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	service, err := scanService(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan service: %v", ErrScanRow, op, err)
	}

	return service, nil
}

func scanService(scan func(dest ...interface{}) error) (*domain.ReservationService, error) {
	var service domain.ReservationService
	var deletedAt, createdAt, updatedAt sql.NullTime
	var lockers pq.Int64Array

	err := scan(
		&service.ID,
		&service.Name,
		&service.Alias,
		&service.Public,
		&service.Web,
		&service.ContactMail,
		&service.AccessGroup,
		&service.RoomID,
		&lockers,
		&deletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	service.LockersID = []int64(lockers)
	if deletedAt.Valid {
		service.DeletedAt = &deletedAt.Time
	}
	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}

func scanMiniService(scan func(dest ...interface{}) error) (*domain.MiniService, error) {
	var miniService domain.MiniService
	var deletedAt, createdAt, updatedAt sql.NullTime
	var lockers pq.Int64Array

	err := scan(
		&miniService.ID,
		&miniService.Name,
		&miniService.AccessGroup,
		&miniService.RoomID,
		&lockers,
		&miniService.ReservationServiceID,
		&deletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	miniService.LockersID = []int64(lockers)
	if deletedAt.Valid {
		miniService.DeletedAt = &deletedAt.Time
	}
	miniService.CreatedAt = createdAt.Time
	miniService.UpdatedAt = updatedAt.Time

	return &miniService, nil
}
