package check_availability

import (
	"context"
	"time"

	"github.com/dormclub/ReservationService/internal/domain"
	"github.com/dormclub/ReservationService/internal/integrations/memberapi"
	"github.com/dormclub/ReservationService/internal/integrations/schedule"
)

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	GetByID(ctx context.Context, id string, includeRemoved bool) (*domain.Calendar, error)
}

// CatalogRepository интерфейс репозитория сервисов бронирования
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.ReservationService, error)
}

// ScheduleClient интерфейс клиента внешнего календарного сервиса
type ScheduleClient interface {
	ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]schedule.Event, error)
}

// MemberClient интерфейс клиента сервиса участников
type MemberClient interface {
	GetMember(ctx context.Context, userID int64) (*memberapi.Member, error)
	GetEntitlements(ctx context.Context, userID int64) ([]memberapi.ServiceEntitlement, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
