package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/dormclub/ReservationService/internal/domain"
	memberClient "github.com/dormclub/ReservationService/internal/integrations/memberapi"
)

// UseCase use case предварительной проверки окна бронирования
type UseCase struct {
	calendarRepo CalendarRepository
	catalogRepo  CatalogRepository
	schedule     ScheduleClient
	members      MemberClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	calendarRepo CalendarRepository,
	catalogRepo CatalogRepository,
	schedule ScheduleClient,
	members MemberClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		calendarRepo: calendarRepo,
		catalogRepo:  catalogRepo,
		schedule:     schedule,
		members:      members,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет проверку без блокировок и записи
// Параллельные проверки безопасны: конвейер решений не имеет побочных эффектов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: user=%d, calendar=%s, guests=%d, start=%s, end=%s",
		req.UserID, req.CalendarID, req.Guests,
		req.Start.Format(domain.DateTimeFormat), req.End.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Разрешаем профиль участника и его права
	requester, err := uc.resolveRequester(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// 4. Получаем календарь
	calendar, err := uc.calendarRepo.GetByID(ctx, req.CalendarID, false)
	if err != nil {
		uc.logger.Warn("CheckAvailability: calendar id=%s not found: %v", req.CalendarID, err)
		return nil, ErrCalendarNotFound
	}

	// 5. Получаем сервис бронирования календаря
	service, err := uc.catalogRepo.GetServiceByID(ctx, calendar.ReservationServiceID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get service id=%d: %v", calendar.ReservationServiceID, err)
		return nil, ErrServiceNotFound
	}

	// 6. Собираем занятость группы коллизий
	existing := make(map[string][]domain.Interval)
	for _, calendarID := range calendar.CollisionGroup() {
		events, err := uc.schedule.ListEvents(ctx, calendarID, req.Start, req.End)
		if err != nil {
			// Недоступный календарь не означает свободный слот
			uc.logger.Error("CheckAvailability: failed to list events for calendar=%s: %v", calendarID, err)
			return nil, fmt.Errorf("%w: failed to list existing events: %v", ErrUnavailableForEvaluation, err)
		}

		intervals := make([]domain.Interval, 0, len(events))
		for _, event := range events {
			intervals = append(intervals, domain.Interval{Start: event.Start, End: event.End})
		}
		existing[calendarID] = intervals
	}

	// 7. Прогоняем заявку через конвейер решений
	decision := domain.EvaluateBooking(
		domain.BookingRequest{Start: req.Start, End: req.End, Guests: req.Guests},
		requester,
		service.Alias,
		calendar,
		existing,
		now,
	)

	uc.logger.Info("CheckAvailability: calendar=%s outcome=%s", calendar.ID, decision.Outcome)

	return &Response{
		Available: decision.CreatesEvent(),
		Approval:  decision.Flagged(),
		Outcome:   string(decision.Outcome),
		Reason:    string(decision.Reason),
		Message:   decision.Message(),
	}, nil
}

// resolveRequester собирает профиль участника и его набор прав
func (uc *UseCase) resolveRequester(ctx context.Context, userID int64) (*domain.Requester, error) {
	member, err := uc.members.GetMember(ctx, userID)
	if err != nil {
		if errors.Is(err, memberClient.ErrMemberNotFound) {
			uc.logger.Warn("CheckAvailability: member id=%d not found", userID)
			return nil, ErrMemberNotFound
		}
		uc.logger.Error("CheckAvailability: member service unavailable for id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to resolve member: %v", ErrUnavailableForEvaluation, err)
	}

	entitlements, err := uc.members.GetEntitlements(ctx, userID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to resolve entitlements for id=%d: %v", userID, err)
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

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.CalendarID == "" {
		return fmt.Errorf("%w: calendarID is required", ErrInvalidInput)
	}
	if req.Guests < 1 {
		return fmt.Errorf("%w: guests must be at least 1", ErrInvalidInput)
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	return nil
}
