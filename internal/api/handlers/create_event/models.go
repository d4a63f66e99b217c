package create_event

import (
	"time"

	"github.com/dormclub/ReservationService/internal/domain"
	createEvent "github.com/dormclub/ReservationService/internal/usecase/create_event"
)

// CreateEventRequest HTTP request model
type CreateEventRequest struct {
	CalendarID         string   `json:"calendarId"`
	Purpose            string   `json:"purpose"`
	Guests             int      `json:"guests"`
	Email              string   `json:"email"`
	Start              string   `json:"start"` // "2025-05-12T11:00:00"
	End                string   `json:"end"`   // "2025-05-12T16:00:00"
	AdditionalServices []string `json:"additionalServices,omitempty"`
}

// EventResponse HTTP response model
type EventResponse struct {
	ID                 string   `json:"id"`
	Purpose            string   `json:"purpose"`
	Guests             int      `json:"guests"`
	Email              string   `json:"email"`
	Start              string   `json:"start"`
	End                string   `json:"end"`
	State              string   `json:"state"`
	UserID             int64    `json:"userId"`
	CalendarID         string   `json:"calendarId"`
	AdditionalServices []string `json:"additionalServices,omitempty"`
	Message            string   `json:"message"`
	CreatedAt          string   `json:"createdAt"`
	UpdatedAt          string   `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateEventRequest) ToUseCaseRequest(userID int64) (*createEvent.Request, error) {
	start, err := time.ParseInLocation(domain.DateTimeFormat, r.Start, time.Local)
	if err != nil {
		return nil, err
	}
	end, err := time.ParseInLocation(domain.DateTimeFormat, r.End, time.Local)
	if err != nil {
		return nil, err
	}

	return &createEvent.Request{
		UserID:             userID,
		CalendarID:         r.CalendarID,
		Purpose:            r.Purpose,
		Guests:             r.Guests,
		Email:              r.Email,
		Start:              start,
		End:                end,
		AdditionalServices: r.AdditionalServices,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createEvent.Response) *EventResponse {
	return &EventResponse{
		ID:                 resp.ID,
		Purpose:            resp.Purpose,
		Guests:             resp.Guests,
		Email:              resp.Email,
		Start:              resp.StartDatetime.Format(domain.DateTimeFormat),
		End:                resp.EndDatetime.Format(domain.DateTimeFormat),
		State:              resp.State,
		UserID:             resp.UserID,
		CalendarID:         resp.CalendarID,
		AdditionalServices: resp.AdditionalServices,
		Message:            resp.Message,
		CreatedAt:          resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          resp.UpdatedAt.Format(time.RFC3339),
	}
}
