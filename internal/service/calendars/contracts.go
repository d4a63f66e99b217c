package calendars

import (
	"context"

	"github.com/dormclub/ReservationService/internal/domain"
	"github.com/dormclub/ReservationService/internal/integrations/memberapi"
)

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	Create(ctx context.Context, calendar *domain.Calendar) (*domain.Calendar, error)
	GetByID(ctx context.Context, id string, includeRemoved bool) (*domain.Calendar, error)
	GetByReservationType(ctx context.Context, reservationType string, includeRemoved bool) (*domain.Calendar, error)
	GetByReservationServiceID(ctx context.Context, reservationServiceID int64, includeRemoved bool) ([]*domain.Calendar, error)
	Update(ctx context.Context, calendar *domain.Calendar) error
	UpdateCollisions(ctx context.Context, id string, collisions []string) error
	SoftRemove(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
}

// CatalogRepository интерфейс репозитория сервисов бронирования
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.ReservationService, error)
	GetMiniServiceNamesByServiceID(ctx context.Context, reservationServiceID int64) ([]string, error)
}

// MemberClient интерфейс клиента сервиса участников
type MemberClient interface {
	GetMember(ctx context.Context, userID int64) (*memberapi.Member, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
