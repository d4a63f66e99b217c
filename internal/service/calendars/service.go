package calendars

import (
	"context"
	"errors"
	"fmt"

	"github.com/dormclub/ReservationService/internal/domain"
	calendarRepo "github.com/dormclub/ReservationService/internal/infra/storage/calendar"
	memberClient "github.com/dormclub/ReservationService/internal/integrations/memberapi"
	"github.com/dormclub/ReservationService/internal/service/calendars/models"
)

// Service сервис администрирования календарей
type Service struct {
	calendarRepo CalendarRepository
	catalogRepo  CatalogRepository
	members      MemberClient
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса календарей
func NewService(
	calendarRepo CalendarRepository,
	catalogRepo CatalogRepository,
	members MemberClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		calendarRepo: calendarRepo,
		catalogRepo:  catalogRepo,
		members:      members,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает календарь сервиса бронирования
// Доступно только менеджеру сервиса. Отношение коллизий поддерживается
// симметричным: новый календарь дописывается в списки всех объявленных
func (s *Service) Create(ctx context.Context, req *models.CreateCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("Create: creating calendar id=%s, type=%s, service=%d by user=%d",
		req.ID, req.ReservationType, req.ReservationServiceID, req.UserID)

	service, err := s.catalogRepo.GetServiceByID(ctx, req.ReservationServiceID)
	if err != nil {
		s.logger.Warn("Create: service id=%d not found: %v", req.ReservationServiceID, err)
		return nil, ErrServiceNotFound
	}

	if err := s.checkManagerAccess(ctx, service.Alias, req.UserID); err != nil {
		s.logger.Warn("Create: access denied for user=%d to service=%s", req.UserID, service.Alias)
		return nil, err
	}

	calendar, err := s.buildCalendar(ctx, req, service.ID)
	if err != nil {
		return nil, err
	}

	var result *domain.Calendar
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Календари из списка коллизий должны существовать
		for _, collisionID := range calendar.CollisionWithCalendar {
			if _, err := s.calendarRepo.GetByID(txCtx, collisionID, false); err != nil {
				if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
					return fmt.Errorf("%w: %s", ErrCollisionCalendarNotFound, collisionID)
				}
				return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
			}
		}

		created, err := s.calendarRepo.Create(txCtx, calendar)
		if err != nil {
			if errors.Is(err, calendarRepo.ErrCalendarAlreadyExists) {
				return ErrCalendarAlreadyExists
			}
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		// Симметричное отношение: дописываем новый календарь в обратные списки
		if err := s.addSymmetricCollisions(txCtx, created.ID, created.CollisionWithCalendar); err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrCalendarAlreadyExists) || errors.Is(err, ErrCollisionCalendarNotFound) {
			s.logger.Warn("Create: %v", err)
		} else {
			s.logger.Error("Create: failed to create calendar id=%s: %v", req.ID, err)
		}
		return nil, err
	}

	s.logger.Info("Create: successfully created calendar id=%s", result.ID)
	return models.FromDomainCalendar(result), nil
}

// GetByID получает календарь по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.CalendarResponse, error) {
	s.logger.Info("GetByID: fetching calendar id=%s", id)

	calendar, err := s.calendarRepo.GetByID(ctx, id, false)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Warn("GetByID: calendar id=%s not found", id)
			return nil, ErrCalendarNotFound
		}
		s.logger.Error("GetByID: repository error for calendar id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCalendar(calendar), nil
}

// ListByService получает календари сервиса бронирования
func (s *Service) ListByService(ctx context.Context, reservationServiceID int64) (*models.CalendarListResponse, error) {
	s.logger.Info("ListByService: fetching calendars for service=%d", reservationServiceID)

	calendars, err := s.calendarRepo.GetByReservationServiceID(ctx, reservationServiceID, false)
	if err != nil {
		s.logger.Error("ListByService: repository error for service=%d: %v", reservationServiceID, err)
		return nil, fmt.Errorf("%w: ListByService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByService: successfully fetched %d calendars for service=%d", len(calendars), reservationServiceID)
	return models.FromDomainCalendarList(calendars), nil
}

// Update изменяет календарь
// Доступно только менеджеру сервиса. Разница списков коллизий отражается
// в обратных списках затронутых календарей
func (s *Service) Update(ctx context.Context, id string, req *models.UpdateCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("Update: updating calendar id=%s by user=%d", id, req.UserID)

	calendar, err := s.getCalendar(ctx, id, false, "Update")
	if err != nil {
		return nil, err
	}

	service, err := s.catalogRepo.GetServiceByID(ctx, calendar.ReservationServiceID)
	if err != nil {
		s.logger.Error("Update: failed to get service id=%d: %v", calendar.ReservationServiceID, err)
		return nil, ErrServiceNotFound
	}

	if err := s.checkManagerAccess(ctx, service.Alias, req.UserID); err != nil {
		s.logger.Warn("Update: access denied for user=%d to calendar id=%s", req.UserID, id)
		return nil, err
	}

	previousCollisions := calendar.CollisionWithCalendar
	if err := s.applyUpdate(ctx, calendar, req, service.ID); err != nil {
		return nil, err
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		added, removed := diffCollisions(previousCollisions, calendar.CollisionWithCalendar)

		for _, collisionID := range added {
			if _, err := s.calendarRepo.GetByID(txCtx, collisionID, false); err != nil {
				if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
					return fmt.Errorf("%w: %s", ErrCollisionCalendarNotFound, collisionID)
				}
				return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
			}
		}

		if err := s.calendarRepo.Update(txCtx, calendar); err != nil {
			if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
				return ErrCalendarNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		if err := s.addSymmetricCollisions(txCtx, calendar.ID, added); err != nil {
			return err
		}
		return s.removeSymmetricCollisions(txCtx, calendar.ID, removed)
	})

	if err != nil {
		s.logger.Error("Update: failed to update calendar id=%s: %v", id, err)
		return nil, err
	}

	s.logger.Info("Update: successfully updated calendar id=%s", id)
	return models.FromDomainCalendar(calendar), nil
}

// Delete удаляет календарь
// По умолчанию мягкое удаление; физическое стирает запись безвозвратно.
// В обоих случаях календарь выписывается из обратных списков коллизий
func (s *Service) Delete(ctx context.Context, id string, req *models.DeleteCalendarRequest) error {
	s.logger.Info("Delete: deleting calendar id=%s by user=%d, hard=%t", id, req.UserID, req.Hard)

	calendar, err := s.getCalendar(ctx, id, req.Hard, "Delete")
	if err != nil {
		return err
	}

	service, err := s.catalogRepo.GetServiceByID(ctx, calendar.ReservationServiceID)
	if err != nil {
		s.logger.Error("Delete: failed to get service id=%d: %v", calendar.ReservationServiceID, err)
		return ErrServiceNotFound
	}

	if err := s.checkManagerAccess(ctx, service.Alias, req.UserID); err != nil {
		s.logger.Warn("Delete: access denied for user=%d to calendar id=%s", req.UserID, id)
		return err
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.removeSymmetricCollisions(txCtx, calendar.ID, calendar.CollisionWithCalendar); err != nil {
			return err
		}

		if req.Hard {
			err = s.calendarRepo.Remove(txCtx, calendar.ID)
		} else {
			err = s.calendarRepo.SoftRemove(txCtx, calendar.ID)
		}
		if err != nil {
			if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
				return ErrCalendarNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		s.logger.Error("Delete: failed to delete calendar id=%s: %v", id, err)
		return err
	}

	s.logger.Info("Delete: successfully deleted calendar id=%s, hard=%t", id, req.Hard)
	return nil
}

// Restore восстанавливает мягко удаленный календарь
// Симметричные ссылки коллизий восстанавливаются вместе с ним
func (s *Service) Restore(ctx context.Context, id string, req *models.RestoreCalendarRequest) (*models.CalendarResponse, error) {
	s.logger.Info("Restore: restoring calendar id=%s by user=%d", id, req.UserID)

	calendar, err := s.getCalendar(ctx, id, true, "Restore")
	if err != nil {
		return nil, err
	}

	service, err := s.catalogRepo.GetServiceByID(ctx, calendar.ReservationServiceID)
	if err != nil {
		s.logger.Error("Restore: failed to get service id=%d: %v", calendar.ReservationServiceID, err)
		return nil, ErrServiceNotFound
	}

	if err := s.checkManagerAccess(ctx, service.Alias, req.UserID); err != nil {
		s.logger.Warn("Restore: access denied for user=%d to calendar id=%s", req.UserID, id)
		return nil, err
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.calendarRepo.Restore(txCtx, id); err != nil {
			if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
				return ErrCalendarNotFound
			}
			return fmt.Errorf("%w: Restore - repository error: %v", ErrInternal, err)
		}
		return s.addSymmetricCollisions(txCtx, calendar.ID, calendar.CollisionWithCalendar)
	})

	if err != nil {
		s.logger.Error("Restore: failed to restore calendar id=%s: %v", id, err)
		return nil, err
	}

	calendar.DeletedAt = nil
	s.logger.Info("Restore: successfully restored calendar id=%s", id)
	return models.FromDomainCalendar(calendar), nil
}

// Вспомогательные методы

func (s *Service) getCalendar(ctx context.Context, id string, includeRemoved bool, op string) (*domain.Calendar, error) {
	calendar, err := s.calendarRepo.GetByID(ctx, id, includeRemoved)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
			s.logger.Warn("%s: calendar id=%s not found", op, id)
			return nil, ErrCalendarNotFound
		}
		s.logger.Error("%s: repository error for calendar id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return calendar, nil
}

// buildCalendar собирает доменный календарь из запроса с валидацией
func (s *Service) buildCalendar(ctx context.Context, req *models.CreateCalendarRequest, serviceID int64) (*domain.Calendar, error) {
	clubRules, err := req.ClubMemberRules.ToDomainRules()
	if err != nil {
		s.logger.Warn("Create: invalid club member rules: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	activeRules, err := req.ActiveMemberRules.ToDomainRules()
	if err != nil {
		s.logger.Warn("Create: invalid active member rules: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	managerRules, err := req.ManagerRules.ToDomainRules()
	if err != nil {
		s.logger.Warn("Create: invalid manager rules: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.checkMiniServices(ctx, req.MiniServices, serviceID); err != nil {
		return nil, err
	}

	color := domain.DefaultCalendarColor
	if req.Color != nil {
		color = *req.Color
	}

	calendar := &domain.Calendar{
		ID:                              req.ID,
		ReservationType:                 req.ReservationType,
		Color:                           color,
		MaxPeople:                       req.MaxPeople,
		MoreThanMaxPeopleWithPermission: req.MoreThanMaxPeopleWithPermission,
		CollisionWithItself:             req.CollisionWithItself,
		CollisionWithCalendar:           req.CollisionWithCalendar,
		MiniServices:                    req.MiniServices,
		ClubMemberRules:                 clubRules,
		ActiveMemberRules:               activeRules,
		ManagerRules:                    managerRules,
		ReservationServiceID:            serviceID,
	}

	if err := calendar.Validate(); err != nil {
		s.logger.Warn("Create: invalid calendar: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return calendar, nil
}

// applyUpdate накладывает частичное обновление на календарь
func (s *Service) applyUpdate(ctx context.Context, calendar *domain.Calendar, req *models.UpdateCalendarRequest, serviceID int64) error {
	if req.ReservationType != nil {
		calendar.ReservationType = *req.ReservationType
	}
	if req.Color != nil {
		calendar.Color = *req.Color
	}
	if req.MaxPeople != nil {
		calendar.MaxPeople = *req.MaxPeople
	}
	if req.MoreThanMaxPeopleWithPermission != nil {
		calendar.MoreThanMaxPeopleWithPermission = *req.MoreThanMaxPeopleWithPermission
	}
	if req.CollisionWithItself != nil {
		calendar.CollisionWithItself = *req.CollisionWithItself
	}
	if req.CollisionWithCalendar != nil {
		calendar.CollisionWithCalendar = req.CollisionWithCalendar
	}
	if req.MiniServices != nil {
		if err := s.checkMiniServices(ctx, req.MiniServices, serviceID); err != nil {
			return err
		}
		calendar.MiniServices = req.MiniServices
	}

	for _, pair := range []struct {
		payload *models.RulesPayload
		target  *domain.Rules
	}{
		{req.ClubMemberRules, &calendar.ClubMemberRules},
		{req.ActiveMemberRules, &calendar.ActiveMemberRules},
		{req.ManagerRules, &calendar.ManagerRules},
	} {
		if pair.payload == nil {
			continue
		}
		rules, err := pair.payload.ToDomainRules()
		if err != nil {
			s.logger.Warn("Update: invalid rules: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		*pair.target = rules
	}

	if err := calendar.Validate(); err != nil {
		s.logger.Warn("Update: invalid calendar: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}

// checkMiniServices проверяет, что мини-сервисы принадлежат сервису бронирования
func (s *Service) checkMiniServices(ctx context.Context, requested []string, serviceID int64) error {
	if len(requested) == 0 {
		return nil
	}

	available, err := s.catalogRepo.GetMiniServiceNamesByServiceID(ctx, serviceID)
	if err != nil {
		s.logger.Error("checkMiniServices: repository error for service=%d: %v", serviceID, err)
		return fmt.Errorf("%w: checkMiniServices - repository error: %v", ErrInternal, err)
	}

	for _, name := range requested {
		found := false
		for _, candidate := range available {
			if candidate == name {
				found = true
				break
			}
		}
		if !found {
			s.logger.Warn("checkMiniServices: mini service %q not found in service=%d", name, serviceID)
			return fmt.Errorf("%w: %q", ErrMiniServiceNotFound, name)
		}
	}

	return nil
}

// addSymmetricCollisions дописывает calendarID в обратные списки коллизий
func (s *Service) addSymmetricCollisions(ctx context.Context, calendarID string, targets []string) error {
	for _, targetID := range targets {
		target, err := s.calendarRepo.GetByID(ctx, targetID, false)
		if err != nil {
			if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
				continue
			}
			return fmt.Errorf("%w: addSymmetricCollisions - repository error: %v", ErrInternal, err)
		}
		if target.CollidesWith(calendarID) {
			continue
		}
		collisions := append(target.CollisionWithCalendar, calendarID)
		if err := s.calendarRepo.UpdateCollisions(ctx, targetID, collisions); err != nil {
			return fmt.Errorf("%w: addSymmetricCollisions - repository error: %v", ErrInternal, err)
		}
	}
	return nil
}

// removeSymmetricCollisions выписывает calendarID из обратных списков коллизий
func (s *Service) removeSymmetricCollisions(ctx context.Context, calendarID string, targets []string) error {
	for _, targetID := range targets {
		target, err := s.calendarRepo.GetByID(ctx, targetID, false)
		if err != nil {
			if errors.Is(err, calendarRepo.ErrCalendarNotFound) {
				continue
			}
			return fmt.Errorf("%w: removeSymmetricCollisions - repository error: %v", ErrInternal, err)
		}
		if !target.CollidesWith(calendarID) {
			continue
		}
		collisions := make([]string, 0, len(target.CollisionWithCalendar))
		for _, id := range target.CollisionWithCalendar {
			if id != calendarID {
				collisions = append(collisions, id)
			}
		}
		if err := s.calendarRepo.UpdateCollisions(ctx, targetID, collisions); err != nil {
			return fmt.Errorf("%w: removeSymmetricCollisions - repository error: %v", ErrInternal, err)
		}
	}
	return nil
}

// diffCollisions возвращает добавленные и удаленные элементы списка коллизий
func diffCollisions(previous, current []string) (added, removed []string) {
	prevSet := make(map[string]struct{}, len(previous))
	for _, id := range previous {
		prevSet[id] = struct{}{}
	}
	currSet := make(map[string]struct{}, len(current))
	for _, id := range current {
		currSet[id] = struct{}{}
	}

	for _, id := range current {
		if _, ok := prevSet[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range previous {
		if _, ok := currSet[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
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

	return nil
}
