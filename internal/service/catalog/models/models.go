package models

import (
	"time"

	"github.com/dormclub/ReservationService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание сервиса бронирования
// Доступно только главе секции
type CreateServiceRequest struct {
	UserID      int64   `json:"userId"`
	Name        string  `json:"name"`
	Alias       string  `json:"alias"`
	Public      bool    `json:"public"`
	Web         *string `json:"web,omitempty"`
	ContactMail string  `json:"contactMail"`
	AccessGroup *string `json:"accessGroup,omitempty"`
	RoomID      *int64  `json:"roomId,omitempty"`
	LockersID   []int64 `json:"lockersId,omitempty"`
}

// DeleteServiceRequest запрос на удаление сервиса бронирования
type DeleteServiceRequest struct {
	UserID int64 `json:"userId"`
}

// CreateMiniServiceRequest запрос на создание мини-сервиса
// Доступно менеджеру сервиса
type CreateMiniServiceRequest struct {
	UserID      int64   `json:"userId"`
	Name        string  `json:"name"`
	AccessGroup *string `json:"accessGroup,omitempty"`
	RoomID      *int64  `json:"roomId,omitempty"`
	LockersID   []int64 `json:"lockersId,omitempty"`
}

// Response модели

// ServiceResponse ответ с данными сервиса бронирования
type ServiceResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Alias       string    `json:"alias"`
	Public      bool      `json:"public"`
	Web         *string   `json:"web,omitempty"`
	ContactMail string    `json:"contactMail"`
	AccessGroup *string   `json:"accessGroup,omitempty"`
	RoomID      *int64    `json:"roomId,omitempty"`
	LockersID   []int64   `json:"lockersId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком сервисов бронирования
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
	Total    int               `json:"total"`
}

// MiniServiceResponse ответ с данными мини-сервиса
type MiniServiceResponse struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	AccessGroup          *string   `json:"accessGroup,omitempty"`
	RoomID               *int64    `json:"roomId,omitempty"`
	LockersID            []int64   `json:"lockersId,omitempty"`
	ReservationServiceID int64     `json:"reservationServiceId"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// MiniServiceListResponse ответ со списком мини-сервисов
type MiniServiceListResponse struct {
	MiniServices []MiniServiceResponse `json:"miniServices"`
	Total        int                   `json:"total"`
}

// FromDomainService конвертирует domain.ReservationService в ServiceResponse
func FromDomainService(service *domain.ReservationService) *ServiceResponse {
	return &ServiceResponse{
		ID:          service.ID,
		Name:        service.Name,
		Alias:       service.Alias,
		Public:      service.Public,
		Web:         service.Web,
		ContactMail: service.ContactMail,
		AccessGroup: service.AccessGroup,
		RoomID:      service.RoomID,
		LockersID:   service.LockersID,
		CreatedAt:   service.CreatedAt,
		UpdatedAt:   service.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список сервисов в ServiceListResponse
func FromDomainServiceList(services []*domain.ReservationService) *ServiceListResponse {
	responses := make([]ServiceResponse, 0, len(services))
	for _, service := range services {
		responses = append(responses, *FromDomainService(service))
	}
	return &ServiceListResponse{
		Services: responses,
		Total:    len(responses),
	}
}

// FromDomainMiniService конвертирует domain.MiniService в MiniServiceResponse
func FromDomainMiniService(miniService *domain.MiniService) *MiniServiceResponse {
	return &MiniServiceResponse{
		ID:                   miniService.ID,
		Name:                 miniService.Name,
		AccessGroup:          miniService.AccessGroup,
		RoomID:               miniService.RoomID,
		LockersID:            miniService.LockersID,
		ReservationServiceID: miniService.ReservationServiceID,
		CreatedAt:            miniService.CreatedAt,
		UpdatedAt:            miniService.UpdatedAt,
	}
}

// FromDomainMiniServiceList конвертирует список мини-сервисов в MiniServiceListResponse
func FromDomainMiniServiceList(miniServices []*domain.MiniService) *MiniServiceListResponse {
	responses := make([]MiniServiceResponse, 0, len(miniServices))
	for _, miniService := range miniServices {
		responses = append(responses, *FromDomainMiniService(miniService))
	}
	return &MiniServiceListResponse{
		MiniServices: responses,
		Total:        len(responses),
	}
}
