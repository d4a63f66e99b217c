package models

import (
	"time"

	"github.com/dormclub/ReservationService/internal/domain"
)

// Request модели

// RulesPayload правила бронирования одного уровня участия
type RulesPayload struct {
	NightTime                    bool `json:"nightTime"`
	ReservationWithoutPermission bool `json:"reservationWithoutPermission"`
	MaxReservationHours          int  `json:"maxReservationHours"`
	InAdvanceHours               int  `json:"inAdvanceHours"`
	InAdvanceMinutes             int  `json:"inAdvanceMinutes"`
	InPriorDays                  int  `json:"inPriorDays"`
}

// ToDomainRules конвертирует payload в domain.Rules с валидацией
func (p RulesPayload) ToDomainRules() (domain.Rules, error) {
	return domain.NewRules(
		p.NightTime,
		p.ReservationWithoutPermission,
		p.MaxReservationHours,
		p.InAdvanceHours,
		p.InAdvanceMinutes,
		p.InPriorDays,
	)
}

// FromDomainRules конвертирует domain.Rules в payload
func FromDomainRules(rules domain.Rules) RulesPayload {
	return RulesPayload{
		NightTime:                    rules.NightTime,
		ReservationWithoutPermission: rules.ReservationWithoutPermission,
		MaxReservationHours:          rules.MaxReservationHours,
		InAdvanceHours:               rules.InAdvanceHours,
		InAdvanceMinutes:             rules.InAdvanceMinutes,
		InPriorDays:                  rules.InPriorDays,
	}
}

// CreateCalendarRequest запрос на создание календаря
// Доступно только менеджеру сервиса
type CreateCalendarRequest struct {
	UserID                          int64        `json:"userId"`
	ID                              string       `json:"id"` // ID календаря во внешней системе
	ReservationType                 string       `json:"reservationType"`
	Color                           *string      `json:"color,omitempty"`
	MaxPeople                       int          `json:"maxPeople"`
	MoreThanMaxPeopleWithPermission bool         `json:"moreThanMaxPeopleWithPermission"`
	CollisionWithItself             bool         `json:"collisionWithItself"`
	CollisionWithCalendar           []string     `json:"collisionWithCalendar,omitempty"`
	MiniServices                    []string     `json:"miniServices,omitempty"`
	ClubMemberRules                 RulesPayload `json:"clubMemberRules"`
	ActiveMemberRules               RulesPayload `json:"activeMemberRules"`
	ManagerRules                    RulesPayload `json:"managerRules"`
	ReservationServiceID            int64        `json:"reservationServiceId"`
}

// UpdateCalendarRequest запрос на изменение календаря
type UpdateCalendarRequest struct {
	UserID                          int64         `json:"userId"`
	ReservationType                 *string       `json:"reservationType,omitempty"`
	Color                           *string       `json:"color,omitempty"`
	MaxPeople                       *int          `json:"maxPeople,omitempty"`
	MoreThanMaxPeopleWithPermission *bool         `json:"moreThanMaxPeopleWithPermission,omitempty"`
	CollisionWithItself             *bool         `json:"collisionWithItself,omitempty"`
	CollisionWithCalendar           []string      `json:"collisionWithCalendar,omitempty"`
	MiniServices                    []string      `json:"miniServices,omitempty"`
	ClubMemberRules                 *RulesPayload `json:"clubMemberRules,omitempty"`
	ActiveMemberRules               *RulesPayload `json:"activeMemberRules,omitempty"`
	ManagerRules                    *RulesPayload `json:"managerRules,omitempty"`
}

// DeleteCalendarRequest запрос на удаление календаря
type DeleteCalendarRequest struct {
	UserID int64 `json:"userId"`
	Hard   bool  `json:"hard,omitempty"` // Физическое удаление вместо мягкого
}

// RestoreCalendarRequest запрос на восстановление мягко удаленного календаря
type RestoreCalendarRequest struct {
	UserID int64 `json:"userId"`
}

// Response модели

// CalendarResponse ответ с данными календаря
type CalendarResponse struct {
	ID                              string       `json:"id"`
	ReservationType                 string       `json:"reservationType"`
	Color                           string       `json:"color"`
	MaxPeople                       int          `json:"maxPeople"`
	MoreThanMaxPeopleWithPermission bool         `json:"moreThanMaxPeopleWithPermission"`
	CollisionWithItself             bool         `json:"collisionWithItself"`
	CollisionWithCalendar           []string     `json:"collisionWithCalendar,omitempty"`
	MiniServices                    []string     `json:"miniServices,omitempty"`
	ClubMemberRules                 RulesPayload `json:"clubMemberRules"`
	ActiveMemberRules               RulesPayload `json:"activeMemberRules"`
	ManagerRules                    RulesPayload `json:"managerRules"`
	ReservationServiceID            int64        `json:"reservationServiceId"`
	DeletedAt                       *time.Time   `json:"deletedAt,omitempty"`
	CreatedAt                       time.Time    `json:"createdAt"`
	UpdatedAt                       time.Time    `json:"updatedAt"`
}

// CalendarListResponse ответ со списком календарей
type CalendarListResponse struct {
	Calendars []CalendarResponse `json:"calendars"`
	Total     int                `json:"total"`
}

// FromDomainCalendar конвертирует domain.Calendar в CalendarResponse
func FromDomainCalendar(calendar *domain.Calendar) *CalendarResponse {
	return &CalendarResponse{
		ID:                              calendar.ID,
		ReservationType:                 calendar.ReservationType,
		Color:                           calendar.Color,
		MaxPeople:                       calendar.MaxPeople,
		MoreThanMaxPeopleWithPermission: calendar.MoreThanMaxPeopleWithPermission,
		CollisionWithItself:             calendar.CollisionWithItself,
		CollisionWithCalendar:           calendar.CollisionWithCalendar,
		MiniServices:                    calendar.MiniServices,
		ClubMemberRules:                 FromDomainRules(calendar.ClubMemberRules),
		ActiveMemberRules:               FromDomainRules(calendar.ActiveMemberRules),
		ManagerRules:                    FromDomainRules(calendar.ManagerRules),
		ReservationServiceID:            calendar.ReservationServiceID,
		DeletedAt:                       calendar.DeletedAt,
		CreatedAt:                       calendar.CreatedAt,
		UpdatedAt:                       calendar.UpdatedAt,
	}
}

// FromDomainCalendarList конвертирует список domain.Calendar в CalendarListResponse
func FromDomainCalendarList(calendars []*domain.Calendar) *CalendarListResponse {
	responses := make([]CalendarResponse, 0, len(calendars))
	for _, calendar := range calendars {
		responses = append(responses, *FromDomainCalendar(calendar))
	}
	return &CalendarListResponse{
		Calendars: responses,
		Total:     len(responses),
	}
}
