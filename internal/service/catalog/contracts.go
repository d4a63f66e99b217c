package catalog

import (
	"context"

	"github.com/dormclub/ReservationService/internal/domain"
	"github.com/dormclub/ReservationService/internal/integrations/memberapi"
)

// CatalogRepository интерфейс репозитория сервисов бронирования
type CatalogRepository interface {
	CreateService(ctx context.Context, service *domain.ReservationService) (*domain.ReservationService, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.ReservationService, error)
	GetServiceByAlias(ctx context.Context, alias string) (*domain.ReservationService, error)
	ListServices(ctx context.Context, publicOnly bool) ([]*domain.ReservationService, error)
	SoftRemoveService(ctx context.Context, id int64) error
	CreateMiniService(ctx context.Context, miniService *domain.MiniService) (*domain.MiniService, error)
	ListMiniServicesByServiceID(ctx context.Context, reservationServiceID int64) ([]*domain.MiniService, error)
}

// MemberClient интерфейс клиента сервиса участников
type MemberClient interface {
	GetMember(ctx context.Context, userID int64) (*memberapi.Member, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
