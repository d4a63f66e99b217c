package create_event

import (
	"context"
	"time"

	"github.com/dormclub/ReservationService/internal/domain"
	"github.com/dormclub/ReservationService/internal/integrations/accesscard"
	"github.com/dormclub/ReservationService/internal/integrations/mailer"
	"github.com/dormclub/ReservationService/internal/integrations/memberapi"
	"github.com/dormclub/ReservationService/internal/integrations/schedule"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) (*domain.Event, error)
}

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
	InsertEvent(ctx context.Context, request schedule.InsertEventRequest) (string, error)
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// MemberClient интерфейс клиента сервиса участников
type MemberClient interface {
	GetMember(ctx context.Context, userID int64) (*memberapi.Member, error)
	GetEntitlements(ctx context.Context, userID int64) ([]memberapi.ServiceEntitlement, error)
}

// AccessCardClient интерфейс клиента системы физического доступа
type AccessCardClient interface {
	AddCardWithGracefulDegradation(ctx context.Context, grant accesscard.CardGrant) error
}

// MailClient интерфейс клиента почтового шлюза
type MailClient interface {
	SendWithGracefulDegradation(ctx context.Context, message mailer.Message) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
