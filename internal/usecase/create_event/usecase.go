package create_event

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dormclub/ReservationService/internal/domain"
	"github.com/dormclub/ReservationService/internal/integrations/accesscard"
	mailerClient "github.com/dormclub/ReservationService/internal/integrations/mailer"
	memberClient "github.com/dormclub/ReservationService/internal/integrations/memberapi"
	scheduleClient "github.com/dormclub/ReservationService/internal/integrations/schedule"
)

// notApprovedPrefix добавляется к заголовку события внешнего календаря,
// пока бронь ожидает подтверждения менеджера
const notApprovedPrefix = "Not approved - "

// UseCase use case для создания бронирования
type UseCase struct {
	eventRepo    EventRepository
	calendarRepo CalendarRepository
	catalogRepo  CatalogRepository
	schedule     ScheduleClient
	members      MemberClient
	accessCards  AccessCardClient
	mail         MailClient
	txManager    TransactionManager
	timeProvider TimeProvider
	locks        *calendarLocks
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	eventRepo EventRepository,
	calendarRepo CalendarRepository,
	catalogRepo CatalogRepository,
	schedule ScheduleClient,
	members MemberClient,
	accessCards AccessCardClient,
	mail MailClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		eventRepo:    eventRepo,
		calendarRepo: calendarRepo,
		catalogRepo:  catalogRepo,
		schedule:     schedule,
		members:      members,
		accessCards:  accessCards,
		mail:         mail,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		locks:        newCalendarLocks(),
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка занятости и запись сериализуются по календарю
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateEvent: user=%d, calendar=%s, guests=%d, start=%s, end=%s",
		req.UserID, req.CalendarID, req.Guests,
		req.Start.Format(domain.DateTimeFormat), req.End.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateEvent: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Разрешаем профиль участника и его права на сервисы
	requester, err := uc.resolveRequester(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// 4. Получаем календарь
	calendar, err := uc.calendarRepo.GetByID(ctx, req.CalendarID, false)
	if err != nil {
		uc.logger.Warn("CreateEvent: calendar id=%s not found: %v", req.CalendarID, err)
		return nil, ErrCalendarNotFound
	}

	// 5. Получаем сервис бронирования календаря
	service, err := uc.catalogRepo.GetServiceByID(ctx, calendar.ReservationServiceID)
	if err != nil {
		uc.logger.Error("CreateEvent: failed to get service id=%d: %v", calendar.ReservationServiceID, err)
		return nil, ErrServiceNotFound
	}

	// 6. Проверяем запрошенные мини-сервисы
	if err := validateMiniServices(req.AdditionalServices, calendar.MiniServices); err != nil {
		uc.logger.Warn("CreateEvent: mini service validation failed: %v", err)
		return nil, err
	}

	// 7. Сериализуем проверку занятости и запись по календарю
	unlock := uc.locks.Lock(calendar.ID)
	defer unlock()

	// 8. Собираем занятость группы коллизий из внешнего календаря
	existing, err := uc.gatherExisting(ctx, calendar, req)
	if err != nil {
		return nil, err
	}

	// 9. Прогоняем заявку через конвейер решений
	decision := domain.EvaluateBooking(
		domain.BookingRequest{Start: req.Start, End: req.End, Guests: req.Guests},
		requester,
		service.Alias,
		calendar,
		existing,
		now,
	)

	if !decision.CreatesEvent() {
		if decision.Outcome == domain.OutcomeAlreadyBooked {
			uc.logger.Warn("CreateEvent: slot taken on calendar=%s", calendar.ID)
			return nil, ErrSlotTaken
		}
		uc.logger.Warn("CreateEvent: rejected (%s): %s", decision.Reason, decision.Message())
		return nil, fmt.Errorf("%w: %s", ErrRejected, decision.Message())
	}

	// 10. Зеркалим событие во внешний календарь
	summary := req.Purpose
	if decision.Flagged() {
		summary = notApprovedPrefix + req.Purpose
	}

	externalID, err := uc.schedule.InsertEvent(ctx, scheduleClient.InsertEventRequest{
		CalendarID:  calendar.ID,
		Summary:     summary,
		Description: fmt.Sprintf("%s (room %s, %s)", requester.FullName, requester.RoomNumber, req.Email),
		Start:       req.Start,
		End:         req.End,
	})
	if err != nil {
		uc.logger.Error("CreateEvent: failed to insert external event: %v", err)
		return nil, fmt.Errorf("%w: failed to mirror event: %v", ErrUnavailableForEvaluation, err)
	}

	event := &domain.Event{
		ID:                 externalID,
		Purpose:            req.Purpose,
		Guests:             req.Guests,
		Email:              req.Email,
		StartDatetime:      req.Start,
		EndDatetime:        req.End,
		State:              decision.EventState(),
		UserID:             req.UserID,
		CalendarID:         calendar.ID,
		AdditionalServices: req.AdditionalServices,
	}

	// 11. Сохраняем событие в сериализуемой транзакции
	var result *domain.Event
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := uc.eventRepo.Create(txCtx, event)
		if err != nil {
			return err
		}
		result = created
		return nil
	})

	if err != nil {
		// Компенсация: убираем осиротевшее событие из внешнего календаря
		if delErr := uc.schedule.DeleteEvent(ctx, calendar.ID, externalID); delErr != nil {
			uc.logger.Error("CreateEvent: failed to roll back external event id=%s: %v", externalID, delErr)
		}
		uc.logger.Error("CreateEvent: failed to persist event: %v", err)
		return nil, fmt.Errorf("%w: failed to persist event: %v", ErrInternal, err)
	}

	// 12. Выдаем физический доступ для подтвержденной брони
	if decision.Outcome == domain.OutcomeConfirmed && service.AccessGroup != nil {
		grant := accesscard.CardGrant{
			AccessGroup:    *service.AccessGroup,
			VariableSymbol: strconv.FormatInt(requester.ID, 10),
			ValidFrom:      req.Start,
			ValidTo:        req.End,
		}
		if err := uc.accessCards.AddCardWithGracefulDegradation(ctx, grant); err != nil {
			// Бронь уже подтверждена; доступ выдаст менеджер вручную
			uc.logger.Warn("CreateEvent: access card grant degraded for user=%d: %v", req.UserID, err)
		}
	}

	// 13. Уведомляем участника и, при ожидании решения, контакт сервиса
	uc.notifyCreated(ctx, result, service, decision)

	uc.logger.Info("CreateEvent: successfully created event id=%s, state=%s", result.ID, result.State)

	return &Response{
		ID:                 result.ID,
		Purpose:            result.Purpose,
		Guests:             result.Guests,
		Email:              result.Email,
		StartDatetime:      result.StartDatetime,
		EndDatetime:        result.EndDatetime,
		State:              string(result.State),
		UserID:             result.UserID,
		CalendarID:         result.CalendarID,
		AdditionalServices: result.AdditionalServices,
		Message:            decision.Message(),
		CreatedAt:          result.CreatedAt,
		UpdatedAt:          result.UpdatedAt,
	}, nil
}

// notifyCreated рассылает письма о созданной брони.
// Недоставленное письмо бронь не отменяет
func (uc *UseCase) notifyCreated(ctx context.Context, event *domain.Event, service *domain.ReservationService, decision domain.Decision) {
	interval := fmt.Sprintf("%s - %s",
		event.StartDatetime.Format(domain.DateTimeFormat), event.EndDatetime.Format(domain.DateTimeFormat))

	subject := fmt.Sprintf("Reservation confirmed: %s", service.Name)
	body := fmt.Sprintf("Your reservation %q (%s) is confirmed.", event.Purpose, interval)
	if decision.Flagged() {
		subject = fmt.Sprintf("Reservation awaiting approval: %s", service.Name)
		body = fmt.Sprintf("Your reservation %q (%s) awaits manager approval.", event.Purpose, interval)
	}

	if err := uc.mail.SendWithGracefulDegradation(ctx, mailerClient.Message{
		To:      event.Email,
		Subject: subject,
		Body:    body,
	}); err != nil {
		uc.logger.Warn("CreateEvent: mail notification degraded for event id=%s: %v", event.ID, err)
	}

	if decision.Flagged() {
		if err := uc.mail.SendWithGracefulDegradation(ctx, mailerClient.Message{
			To:      service.ContactMail,
			Subject: fmt.Sprintf("Reservation pending approval: %s", service.Name),
			Body:    fmt.Sprintf("Reservation %q (%s) by user %d awaits your decision.", event.Purpose, interval, event.UserID),
		}); err != nil {
			uc.logger.Warn("CreateEvent: manager mail notification degraded for event id=%s: %v", event.ID, err)
		}
	}
}

// resolveRequester собирает профиль участника и его набор прав
func (uc *UseCase) resolveRequester(ctx context.Context, userID int64) (*domain.Requester, error) {
	member, err := uc.members.GetMember(ctx, userID)
	if err != nil {
		if errors.Is(err, memberClient.ErrMemberNotFound) {
			uc.logger.Warn("CreateEvent: member id=%d not found", userID)
			return nil, ErrMemberNotFound
		}
		uc.logger.Error("CreateEvent: member service unavailable for id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to resolve member: %v", ErrUnavailableForEvaluation, err)
	}

	entitlements, err := uc.members.GetEntitlements(ctx, userID)
	if err != nil {
		uc.logger.Error("CreateEvent: failed to resolve entitlements for id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to resolve entitlements: %v", ErrUnavailableForEvaluation, err)
	}

	services := make(map[string]struct{}, len(entitlements))
	for _, entitlement := range entitlements {
		services[entitlement.Alias] = struct{}{}
	}

	return &domain.Requester{
		ID:           member.ID,
		Username:     member.Username,
		FullName:     member.FullName,
		RoomNumber:   member.RoomNumber,
		ActiveMember: member.ActiveMember,
		SectionHead:  member.SectionHead,
		Roles:        member.Roles,
		Services:     services,
	}, nil
}

// gatherExisting собирает занятые интервалы по всем календарям группы коллизий
func (uc *UseCase) gatherExisting(ctx context.Context, calendar *domain.Calendar, req *Request) (map[string][]domain.Interval, error) {
	existing := make(map[string][]domain.Interval)

	for _, calendarID := range calendar.CollisionGroup() {
		events, err := uc.schedule.ListEvents(ctx, calendarID, req.Start, req.End)
		if err != nil {
			// Недоступный календарь не означает свободный слот
			uc.logger.Error("CreateEvent: failed to list events for calendar=%s: %v", calendarID, err)
			return nil, fmt.Errorf("%w: failed to list existing events: %v", ErrUnavailableForEvaluation, err)
		}

		intervals := make([]domain.Interval, 0, len(events))
		for _, event := range events {
			intervals = append(intervals, domain.Interval{Start: event.Start, End: event.End})
		}
		existing[calendarID] = intervals
	}

	return existing, nil
}
