package events

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dormclub/ReservationService/internal/domain"
	eventRepo "github.com/dormclub/ReservationService/internal/infra/storage/event"
	"github.com/dormclub/ReservationService/internal/integrations/accesscard"
	mailerClient "github.com/dormclub/ReservationService/internal/integrations/mailer"
	memberClient "github.com/dormclub/ReservationService/internal/integrations/memberapi"
	"github.com/dormclub/ReservationService/internal/integrations/schedule"
	"github.com/dormclub/ReservationService/internal/service/events/models"
)

// notApprovedPrefix заголовок события внешнего календаря, ожидающего
// подтверждения менеджера
const notApprovedPrefix = "Not approved - "

// Service сервис для работы с бронированиями
type Service struct {
	eventRepo    EventRepository
	calendarRepo CalendarRepository
	catalogRepo  CatalogRepository
	schedule     ScheduleClient
	members      MemberClient
	accessCards  AccessCardClient
	mail         MailClient
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	eventRepo EventRepository,
	calendarRepo CalendarRepository,
	catalogRepo CatalogRepository,
	schedule ScheduleClient,
	members MemberClient,
	accessCards AccessCardClient,
	mail MailClient,
	logger Logger,
) *Service {
	return &Service{
		eventRepo:    eventRepo,
		calendarRepo: calendarRepo,
		catalogRepo:  catalogRepo,
		schedule:     schedule,
		members:      members,
		accessCards:  accessCards,
		mail:         mail,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Участник видит только свое бронирование, менеджер сервиса - любое
func (s *Service) GetByID(ctx context.Context, id string, userID int64) (*models.EventResponse, error) {
	s.logger.Info("GetByID: fetching event id=%s for user=%d", id, userID)

	event, err := s.getEvent(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if event.UserID != userID {
		service, err := s.serviceForEvent(ctx, event)
		if err != nil {
			return nil, err
		}
		if err := s.checkManagerAccess(ctx, service.Alias, userID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to event id=%s", userID, id)
			return nil, err
		}
	}

	s.logger.Info("GetByID: successfully fetched event id=%s", id)
	return models.FromDomainEvent(event), nil
}

// GetUserEvents получает историю бронирований участника
// Опционально фильтрует отмененные
func (s *Service) GetUserEvents(ctx context.Context, req *models.GetUserEventsRequest) (*models.EventListResponse, error) {
	s.logger.Info("GetUserEvents: fetching events for user=%d, activeOnly=%t", req.UserID, req.ActiveOnly)

	events, err := s.eventRepo.GetByUserID(ctx, req.UserID)
	if err != nil {
		s.logger.Error("GetUserEvents: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserEvents - repository error: %v", ErrInternal, err)
	}

	if req.ActiveOnly {
		active := events[:0]
		for _, event := range events {
			if event.IsActive() {
				active = append(active, event)
			}
		}
		events = active
	}

	s.logger.Info("GetUserEvents: successfully fetched %d events for user=%d", len(events), req.UserID)
	return models.FromDomainEventList(events), nil
}

// GetServiceEvents получает бронирования сервиса в заданном состоянии
// Доступно только менеджеру сервиса; менеджер разбирает очередь not_approved
func (s *Service) GetServiceEvents(ctx context.Context, req *models.GetServiceEventsRequest) (*models.EventListResponse, error) {
	s.logger.Info("GetServiceEvents: fetching events for service=%s, state=%s, user=%d",
		req.ServiceAlias, req.State, req.UserID)

	state, err := models.ToDomainEventState(req.State)
	if err != nil {
		s.logger.Warn("GetServiceEvents: invalid state=%s", req.State)
		return nil, fmt.Errorf("%w: invalid state", ErrInvalidInput)
	}

	service, err := s.catalogRepo.GetServiceByAlias(ctx, req.ServiceAlias)
	if err != nil {
		s.logger.Warn("GetServiceEvents: service alias=%s not found: %v", req.ServiceAlias, err)
		return nil, ErrServiceNotFound
	}

	if err := s.checkManagerAccess(ctx, service.Alias, req.UserID); err != nil {
		s.logger.Warn("GetServiceEvents: access denied for user=%d to service=%s", req.UserID, req.ServiceAlias)
		return nil, err
	}

	calendars, err := s.calendarRepo.GetByReservationServiceID(ctx, service.ID, false)
	if err != nil {
		s.logger.Error("GetServiceEvents: failed to get calendars for service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: GetServiceEvents - repository error: %v", ErrInternal, err)
	}

	calendarIDs := make([]string, 0, len(calendars))
	for _, calendar := range calendars {
		calendarIDs = append(calendarIDs, calendar.ID)
	}

	events, err := s.eventRepo.GetByStateAndCalendarIDs(ctx, state, calendarIDs)
	if err != nil {
		s.logger.Error("GetServiceEvents: repository error for service=%s: %v", req.ServiceAlias, err)
		return nil, fmt.Errorf("%w: GetServiceEvents - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetServiceEvents: successfully fetched %d events for service=%s", len(events), req.ServiceAlias)
	return models.FromDomainEventList(events), nil
}

// Cancel отменяет бронирование
// Участник отменяет свое бронирование до его начала, менеджер сервиса - любое активное
func (s *Service) Cancel(ctx context.Context, eventID string, req *models.CancelEventRequest) error {
	s.logger.Info("Cancel: canceling event id=%s by user=%d", eventID, req.UserID)

	event, err := s.getEvent(ctx, eventID, "Cancel")
	if err != nil {
		return err
	}

	if !event.IsActive() {
		s.logger.Warn("Cancel: event id=%s already canceled", eventID)
		return ErrCannotCancel
	}

	now := s.timeProvider.Now()
	service, err := s.serviceForEvent(ctx, event)
	if err != nil {
		return err
	}

	if event.UserID == req.UserID {
		if !event.CanBeCanceled(now) {
			s.logger.Warn("Cancel: event id=%s already started", eventID)
			return ErrCannotCancel
		}
	} else {
		if err := s.checkManagerAccess(ctx, service.Alias, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel event id=%s", req.UserID, eventID)
			return ErrAccessDenied
		}
	}

	// Убираем событие из внешнего календаря; отсутствие там не считаем ошибкой
	if err := s.schedule.DeleteEvent(ctx, event.CalendarID, event.ID); err != nil && !errors.Is(err, schedule.ErrEventNotFound) {
		s.logger.Error("Cancel: failed to delete external event id=%s: %v", eventID, err)
		return fmt.Errorf("%w: Cancel - failed to delete external event: %v", ErrInternal, err)
	}

	if err := s.eventRepo.UpdateState(ctx, eventID, domain.StateCanceled); err != nil {
		s.logger.Error("Cancel: repository error for event id=%s: %v", eventID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Отзываем физический доступ владельца
	if service.AccessGroup != nil {
		symbol := strconv.FormatInt(event.UserID, 10)
		if err := s.accessCards.DeleteCard(ctx, *service.AccessGroup, symbol); err != nil && !errors.Is(err, accesscard.ErrCardNotFound) {
			// Бронь уже отменена; карту отзовет менеджер вручную
			s.logger.Warn("Cancel: access card revocation degraded for user=%d: %v", event.UserID, err)
		}
	}

	s.notifyOwner(ctx, event, "Reservation canceled",
		fmt.Sprintf("Your reservation %q has been canceled.", event.Purpose))

	s.logger.Info("Cancel: successfully canceled event id=%s", eventID)
	return nil
}

// Approve подтверждает бронирование, ожидающее решения менеджера
// Доступно только менеджеру сервиса
func (s *Service) Approve(ctx context.Context, eventID string, req *models.ApproveEventRequest) error {
	s.logger.Info("Approve: approving event id=%s by user=%d", eventID, req.UserID)

	event, err := s.getEvent(ctx, eventID, "Approve")
	if err != nil {
		return err
	}

	if event.State != domain.StateNotApproved {
		s.logger.Warn("Approve: event id=%s is not awaiting approval, state=%s", eventID, event.State)
		return ErrNotAwaitingApproval
	}

	service, err := s.serviceForEvent(ctx, event)
	if err != nil {
		return err
	}

	if err := s.checkManagerAccess(ctx, service.Alias, req.UserID); err != nil {
		s.logger.Warn("Approve: access denied for user=%d to approve event id=%s", req.UserID, eventID)
		return err
	}

	// Снимаем пометку ожидания с события внешнего календаря
	err = s.schedule.UpdateEvent(ctx, event.CalendarID, event.ID, schedule.UpdateEventRequest{
		Summary: event.Purpose,
		Start:   event.StartDatetime,
		End:     event.EndDatetime,
	})
	if err != nil && !errors.Is(err, schedule.ErrEventNotFound) {
		s.logger.Error("Approve: failed to update external event id=%s: %v", eventID, err)
		return fmt.Errorf("%w: Approve - failed to update external event: %v", ErrInternal, err)
	}

	if err := s.eventRepo.UpdateState(ctx, eventID, domain.StateConfirmed); err != nil {
		s.logger.Error("Approve: repository error for event id=%s: %v", eventID, err)
		return fmt.Errorf("%w: Approve - repository error: %v", ErrInternal, err)
	}

	// Выдаем физический доступ владельцу подтвержденной брони
	if service.AccessGroup != nil {
		grant := accesscard.CardGrant{
			AccessGroup:    *service.AccessGroup,
			VariableSymbol: strconv.FormatInt(event.UserID, 10),
			ValidFrom:      event.StartDatetime,
			ValidTo:        event.EndDatetime,
		}
		if err := s.accessCards.AddCardWithGracefulDegradation(ctx, grant); err != nil {
			s.logger.Warn("Approve: access card grant degraded for user=%d: %v", event.UserID, err)
		}
	}

	s.notifyOwner(ctx, event, "Reservation approved",
		fmt.Sprintf("Your reservation %q (%s - %s) has been approved.",
			event.Purpose,
			event.StartDatetime.Format(domain.DateTimeFormat),
			event.EndDatetime.Format(domain.DateTimeFormat)))

	s.logger.Info("Approve: successfully approved event id=%s", eventID)
	return nil
}

// RequestUpdateTime переносит бронирование на новое время по запросу владельца
// Перенос ожидает подтверждения менеджера
func (s *Service) RequestUpdateTime(ctx context.Context, eventID string, req *models.RequestUpdateTimeRequest) error {
	s.logger.Info("RequestUpdateTime: moving event id=%s by user=%d to start=%s, end=%s",
		eventID, req.UserID,
		req.Start.Format(domain.DateTimeFormat), req.End.Format(domain.DateTimeFormat))

	event, err := s.getEvent(ctx, eventID, "RequestUpdateTime")
	if err != nil {
		return err
	}

	if event.UserID != req.UserID {
		s.logger.Warn("RequestUpdateTime: access denied for user=%d to event id=%s", req.UserID, eventID)
		return ErrAccessDenied
	}

	now := s.timeProvider.Now()
	if !event.CanRequestTimeUpdate(now) {
		s.logger.Warn("RequestUpdateTime: event id=%s cannot be moved, state=%s", eventID, event.State)
		return ErrCannotUpdateTime
	}

	if req.Start.IsZero() || req.End.IsZero() || !req.End.After(req.Start) || req.Start.Before(now) {
		s.logger.Warn("RequestUpdateTime: invalid interval for event id=%s", eventID)
		return fmt.Errorf("%w: invalid interval", ErrInvalidInput)
	}

	// Помечаем событие внешнего календаря как ожидающее решения
	err = s.schedule.UpdateEvent(ctx, event.CalendarID, event.ID, schedule.UpdateEventRequest{
		Summary: notApprovedPrefix + event.Purpose,
		Start:   req.Start,
		End:     req.End,
	})
	if err != nil && !errors.Is(err, schedule.ErrEventNotFound) {
		s.logger.Error("RequestUpdateTime: failed to update external event id=%s: %v", eventID, err)
		return fmt.Errorf("%w: RequestUpdateTime - failed to update external event: %v", ErrInternal, err)
	}

	if err := s.eventRepo.UpdateTime(ctx, eventID, req.Start, req.End, domain.StateUpdateRequested); err != nil {
		s.logger.Error("RequestUpdateTime: repository error for event id=%s: %v", eventID, err)
		return fmt.Errorf("%w: RequestUpdateTime - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RequestUpdateTime: successfully moved event id=%s, awaiting approval", eventID)
	return nil
}

// ApproveUpdateTime подтверждает перенос времени бронирования
// Доступно только менеджеру сервиса
func (s *Service) ApproveUpdateTime(ctx context.Context, eventID string, req *models.ApproveUpdateTimeRequest) error {
	s.logger.Info("ApproveUpdateTime: approving time update for event id=%s by user=%d", eventID, req.UserID)

	event, err := s.getEvent(ctx, eventID, "ApproveUpdateTime")
	if err != nil {
		return err
	}

	if event.State != domain.StateUpdateRequested {
		s.logger.Warn("ApproveUpdateTime: event id=%s has no pending time update, state=%s", eventID, event.State)
		return ErrNotAwaitingApproval
	}

	service, err := s.serviceForEvent(ctx, event)
	if err != nil {
		return err
	}

	if err := s.checkManagerAccess(ctx, service.Alias, req.UserID); err != nil {
		s.logger.Warn("ApproveUpdateTime: access denied for user=%d to event id=%s", req.UserID, eventID)
		return err
	}

	err = s.schedule.UpdateEvent(ctx, event.CalendarID, event.ID, schedule.UpdateEventRequest{
		Summary: event.Purpose,
		Start:   event.StartDatetime,
		End:     event.EndDatetime,
	})
	if err != nil && !errors.Is(err, schedule.ErrEventNotFound) {
		s.logger.Error("ApproveUpdateTime: failed to update external event id=%s: %v", eventID, err)
		return fmt.Errorf("%w: ApproveUpdateTime - failed to update external event: %v", ErrInternal, err)
	}

	if err := s.eventRepo.UpdateState(ctx, eventID, domain.StateConfirmed); err != nil {
		s.logger.Error("ApproveUpdateTime: repository error for event id=%s: %v", eventID, err)
		return fmt.Errorf("%w: ApproveUpdateTime - repository error: %v", ErrInternal, err)
	}

	// Окно физического доступа двигается вместе с бронью
	if service.AccessGroup != nil {
		grant := accesscard.CardGrant{
			AccessGroup:    *service.AccessGroup,
			VariableSymbol: strconv.FormatInt(event.UserID, 10),
			ValidFrom:      event.StartDatetime,
			ValidTo:        event.EndDatetime,
		}
		if err := s.accessCards.AddCardWithGracefulDegradation(ctx, grant); err != nil {
			s.logger.Warn("ApproveUpdateTime: access card update degraded for user=%d: %v", event.UserID, err)
		}
	}

	s.notifyOwner(ctx, event, "Reservation time update approved",
		fmt.Sprintf("Your reservation %q has been moved to %s - %s.",
			event.Purpose,
			event.StartDatetime.Format(domain.DateTimeFormat),
			event.EndDatetime.Format(domain.DateTimeFormat)))

	s.logger.Info("ApproveUpdateTime: successfully approved time update for event id=%s", eventID)
	return nil
}

// Вспомогательные методы

// notifyOwner отправляет письмо владельцу брони.
// Недоставленное письмо операцию не отменяет
func (s *Service) notifyOwner(ctx context.Context, event *domain.Event, subject, body string) {
	if event.Email == "" {
		return
	}
	if err := s.mail.SendWithGracefulDegradation(ctx, mailerClient.Message{
		To:      event.Email,
		Subject: subject,
		Body:    body,
	}); err != nil {
		s.logger.Warn("notifyOwner: mail notification degraded for event id=%s: %v", event.ID, err)
	}
}

func (s *Service) getEvent(ctx context.Context, id string, op string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("%s: event id=%s not found", op, id)
			return nil, ErrEventNotFound
		}
		s.logger.Error("%s: repository error for event id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return event, nil
}

// serviceForEvent разрешает сервис бронирования, которому принадлежит событие
func (s *Service) serviceForEvent(ctx context.Context, event *domain.Event) (*domain.ReservationService, error) {
	calendar, err := s.calendarRepo.GetByID(ctx, event.CalendarID, true)
	if err != nil {
		s.logger.Error("serviceForEvent: failed to get calendar id=%s: %v", event.CalendarID, err)
		return nil, ErrCalendarNotFound
	}

	service, err := s.catalogRepo.GetServiceByID(ctx, calendar.ReservationServiceID)
	if err != nil {
		s.logger.Error("serviceForEvent: failed to get service id=%d: %v", calendar.ReservationServiceID, err)
		return nil, ErrServiceNotFound
	}

	return service, nil
}

// checkManagerAccess проверяет, что участник является менеджером сервиса
func (s *Service) checkManagerAccess(ctx context.Context, serviceAlias string, userID int64) error {
	member, err := s.members.GetMember(ctx, userID)
	if err != nil {
		if errors.Is(err, memberClient.ErrMemberNotFound) {
			s.logger.Warn("checkManagerAccess: member id=%d not found", userID)
			return ErrMemberNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get member id=%d: %v", userID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get member: %v", ErrInternal, err)
	}

	requester := &domain.Requester{
		ID:           member.ID,
		ActiveMember: member.ActiveMember,
		Roles:        member.Roles,
	}

	if domain.SelectTier(requester, serviceAlias) != domain.TierManager {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of service=%s", userID, serviceAlias)
		return ErrAccessDenied
	}

	s.logger.Info("checkManagerAccess: user=%d is manager of service=%s", userID, serviceAlias)
	return nil
}
