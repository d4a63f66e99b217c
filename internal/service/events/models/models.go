package models

import (
	"errors"
	"time"

	"github.com/dormclub/ReservationService/internal/domain"
)

var (
	// ErrInvalidState возвращается при некорректном состоянии события
	ErrInvalidState = errors.New("invalid event state")
)

// Request модели

// GetUserEventsRequest запрос на получение бронирований участника
type GetUserEventsRequest struct {
	UserID     int64 `json:"userId"`
	ActiveOnly bool  `json:"activeOnly,omitempty"` // Только неотмененные бронирования
}

// GetServiceEventsRequest запрос на получение бронирований сервиса
// Доступно только менеджеру сервиса
type GetServiceEventsRequest struct {
	UserID       int64  `json:"userId"`
	ServiceAlias string `json:"serviceAlias"`
	State        string `json:"state"` // Фильтр по состоянию (например, not_approved)
}

// CancelEventRequest запрос на отмену бронирования
type CancelEventRequest struct {
	UserID int64 `json:"userId"`
}

// ApproveEventRequest запрос на подтверждение бронирования менеджером
type ApproveEventRequest struct {
	UserID int64 `json:"userId"`
}

// RequestUpdateTimeRequest запрос участника на перенос времени бронирования
type RequestUpdateTimeRequest struct {
	UserID int64     `json:"userId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// ApproveUpdateTimeRequest запрос менеджера на подтверждение переноса
type ApproveUpdateTimeRequest struct {
	UserID int64 `json:"userId"`
}

// ToDomainEventState конвертирует строку в domain.EventState
func ToDomainEventState(state string) (domain.EventState, error) {
	switch domain.EventState(state) {
	case domain.StateNotApproved, domain.StateUpdateRequested, domain.StateConfirmed, domain.StateCanceled:
		return domain.EventState(state), nil
	default:
		return "", ErrInvalidState
	}
}

// Response модели

// EventResponse ответ с данными бронирования
type EventResponse struct {
	ID                 string    `json:"id"`
	Purpose            string    `json:"purpose"`
	Guests             int       `json:"guests"`
	Email              string    `json:"email"`
	StartDatetime      time.Time `json:"startDatetime"`
	EndDatetime        time.Time `json:"endDatetime"`
	State              string    `json:"state"`
	UserID             int64     `json:"userId"`
	CalendarID         string    `json:"calendarId"`
	AdditionalServices []string  `json:"additionalServices,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// EventListResponse ответ со списком бронирований
type EventListResponse struct {
	Events []EventResponse `json:"events"`
	Total  int             `json:"total"`
}

// FromDomainEvent конвертирует domain.Event в EventResponse
func FromDomainEvent(event *domain.Event) *EventResponse {
	return &EventResponse{
		ID:                 event.ID,
		Purpose:            event.Purpose,
		Guests:             event.Guests,
		Email:              event.Email,
		StartDatetime:      event.StartDatetime,
		EndDatetime:        event.EndDatetime,
		State:              string(event.State),
		UserID:             event.UserID,
		CalendarID:         event.CalendarID,
		AdditionalServices: event.AdditionalServices,
		CreatedAt:          event.CreatedAt,
		UpdatedAt:          event.UpdatedAt,
	}
}

// FromDomainEventList конвертирует список domain.Event в EventListResponse
func FromDomainEventList(events []*domain.Event) *EventListResponse {
	responses := make([]EventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, *FromDomainEvent(event))
	}
	return &EventListResponse{
		Events: responses,
		Total:  len(responses),
	}
}
