package events

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
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.Event, error)
	GetByStateAndCalendarIDs(ctx context.Context, state domain.EventState, calendarIDs []string) ([]*domain.Event, error)
	UpdateState(ctx context.Context, id string, state domain.EventState) error
	UpdateTime(ctx context.Context, id string, start, end time.Time, state domain.EventState) error
	SoftRemove(ctx context.Context, id string) error
}

// CalendarRepository интерфейс репозитория календарей
type CalendarRepository interface {
	GetByID(ctx context.Context, id string, includeRemoved bool) (*domain.Calendar, error)
	GetByReservationServiceID(ctx context.Context, reservationServiceID int64, includeRemoved bool) ([]*domain.Calendar, error)
}

// CatalogRepository интерфейс репозитория сервисов бронирования
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.ReservationService, error)
	GetServiceByAlias(ctx context.Context, alias string) (*domain.ReservationService, error)
}

// ScheduleClient интерфейс клиента внешнего календарного сервиса
type ScheduleClient interface {
	UpdateEvent(ctx context.Context, calendarID, eventID string, request schedule.UpdateEventRequest) error
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// MemberClient интерфейс клиента сервиса участников
type MemberClient interface {
	GetMember(ctx context.Context, userID int64) (*memberapi.Member, error)
}

// AccessCardClient интерфейс клиента системы физического доступа
type AccessCardClient interface {
	AddCardWithGracefulDegradation(ctx context.Context, grant accesscard.CardGrant) error
	DeleteCard(ctx context.Context, accessGroup, variableSymbol string) error
}

// MailClient интерфейс клиента почтового шлюза
type MailClient interface {
	SendWithGracefulDegradation(ctx context.Context, message mailer.Message) error
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
