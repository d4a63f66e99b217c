package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dormclub/ReservationService/internal/domain"
	catalogRepo "github.com/dormclub/ReservationService/internal/infra/storage/catalog"
	memberClient "github.com/dormclub/ReservationService/internal/integrations/memberapi"
	"github.com/dormclub/ReservationService/internal/service/catalog/models"
)

// Service сервис администрирования каталога сервисов бронирования
type Service struct {
	catalogRepo CatalogRepository
	members     MemberClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, members MemberClient, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		members:     members,
		logger:      logger,
	}
}

// CreateService создает сервис бронирования
// Доступно только главе секции
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: creating service name=%s, alias=%s by user=%d", req.Name, req.Alias, req.UserID)

	if err := validateCreateService(req); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkSectionHead(ctx, req.UserID); err != nil {
		s.logger.Warn("CreateService: access denied for user=%d", req.UserID)
		return nil, err
	}

	service := &domain.ReservationService{
		Name:        req.Name,
		Alias:       req.Alias,
		Public:      req.Public,
		Web:         req.Web,
		ContactMail: req.ContactMail,
		AccessGroup: req.AccessGroup,
		RoomID:      req.RoomID,
		LockersID:   req.LockersID,
	}

	created, err := s.catalogRepo.CreateService(ctx, service)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrAlreadyExists) {
			s.logger.Warn("CreateService: service name=%s or alias=%s already exists", req.Name, req.Alias)
			return nil, ErrServiceAlreadyExists
		}
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// GetServiceByAlias получает сервис бронирования по алиасу
func (s *Service) GetServiceByAlias(ctx context.Context, alias string) (*models.ServiceResponse, error) {
	s.logger.Info("GetServiceByAlias: fetching service alias=%s", alias)

	service, err := s.catalogRepo.GetServiceByAlias(ctx, alias)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetServiceByAlias: service alias=%s not found", alias)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetServiceByAlias: repository error for alias=%s: %v", alias, err)
		return nil, fmt.Errorf("%w: GetServiceByAlias - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}

// ListServices получает сервисы бронирования
// publicOnly скрывает внутренние сервисы от обычной выдачи
func (s *Service) ListServices(ctx context.Context, publicOnly bool) (*models.ServiceListResponse, error) {
	s.logger.Info("ListServices: fetching services, publicOnly=%t", publicOnly)

	services, err := s.catalogRepo.ListServices(ctx, publicOnly)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: successfully fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// DeleteService мягко удаляет сервис бронирования
// Доступно только главе секции
func (s *Service) DeleteService(ctx context.Context, id int64, req *models.DeleteServiceRequest) error {
	s.logger.Info("DeleteService: deleting service id=%d by user=%d", id, req.UserID)

	if err := s.checkSectionHead(ctx, req.UserID); err != nil {
		s.logger.Warn("DeleteService: access denied for user=%d", req.UserID)
		return err
	}

	if err := s.catalogRepo.SoftRemoveService(ctx, id); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("DeleteService: service id=%d not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("DeleteService: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteService: successfully deleted service id=%d", id)
	return nil
}

// CreateMiniService создает мини-сервис
// Доступно менеджеру сервиса бронирования
func (s *Service) CreateMiniService(ctx context.Context, serviceID int64, req *models.CreateMiniServiceRequest) (*models.MiniServiceResponse, error) {
	s.logger.Info("CreateMiniService: creating mini service name=%s for service=%d by user=%d",
		req.Name, serviceID, req.UserID)

	if strings.TrimSpace(req.Name) == "" {
		s.logger.Warn("CreateMiniService: empty name")
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	service, err := s.catalogRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("CreateMiniService: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("CreateMiniService: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: CreateMiniService - repository error: %v", ErrInternal, err)
	}

	if err := s.checkManagerAccess(ctx, service.Alias, req.UserID); err != nil {
		s.logger.Warn("CreateMiniService: access denied for user=%d to service=%s", req.UserID, service.Alias)
		return nil, err
	}

	miniService := &domain.MiniService{
		Name:                 req.Name,
		AccessGroup:          req.AccessGroup,
		RoomID:               req.RoomID,
		LockersID:            req.LockersID,
		ReservationServiceID: service.ID,
	}

	created, err := s.catalogRepo.CreateMiniService(ctx, miniService)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrAlreadyExists) {
			s.logger.Warn("CreateMiniService: mini service name=%s already exists in service=%d", req.Name, serviceID)
			return nil, ErrServiceAlreadyExists
		}
		s.logger.Error("CreateMiniService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateMiniService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateMiniService: successfully created mini service id=%d", created.ID)
	return models.FromDomainMiniService(created), nil
}

// ListMiniServices получает мини-сервисы сервиса бронирования
func (s *Service) ListMiniServices(ctx context.Context, serviceID int64) (*models.MiniServiceListResponse, error) {
	s.logger.Info("ListMiniServices: fetching mini services for service=%d", serviceID)

	miniServices, err := s.catalogRepo.ListMiniServicesByServiceID(ctx, serviceID)
	if err != nil {
		s.logger.Error("ListMiniServices: repository error for service=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: ListMiniServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListMiniServices: successfully fetched %d mini services for service=%d", len(miniServices), serviceID)
	return models.FromDomainMiniServiceList(miniServices), nil
}

// Вспомогательные методы

// checkSectionHead проверяет, что участник является главой секции
func (s *Service) checkSectionHead(ctx context.Context, userID int64) error {
	member, err := s.getMember(ctx, userID)
	if err != nil {
		return err
	}

	if !member.ActiveMember || !member.SectionHead {
		s.logger.Warn("checkSectionHead: user=%d is not the section head", userID)
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что участник является менеджером сервиса
func (s *Service) checkManagerAccess(ctx context.Context, serviceAlias string, userID int64) error {
	member, err := s.getMember(ctx, userID)
	if err != nil {
		return err
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

func (s *Service) getMember(ctx context.Context, userID int64) (*memberClient.Member, error) {
	member, err := s.members.GetMember(ctx, userID)
	if err != nil {
		if errors.Is(err, memberClient.ErrMemberNotFound) {
			s.logger.Warn("getMember: member id=%d not found", userID)
			return nil, ErrMemberNotFound
		}
		s.logger.Error("getMember: failed to get member id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: failed to get member: %v", ErrInternal, err)
	}
	return member, nil
}

// validateCreateService валидирует запрос на создание сервиса
func validateCreateService(req *models.CreateServiceRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Alias) == "" {
		return fmt.Errorf("%w: alias is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ContactMail) == "" {
		return fmt.Errorf("%w: contactMail is required", ErrInvalidInput)
	}
	return nil
}
