package check_availability

import (
	"time"

	"github.com/dormclub/ReservationService/internal/domain"
	checkAvailability "github.com/dormclub/ReservationService/internal/usecase/check_availability"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	CalendarID string `json:"calendarId"`
	Guests     int    `json:"guests"`
	Start      string `json:"start"` // "2025-05-12T11:00:00"
	End        string `json:"end"`   // "2025-05-12T16:00:00"
}

// CheckAvailabilityResponse HTTP response model
type CheckAvailabilityResponse struct {
	Available bool   `json:"available"`
	Approval  bool   `json:"approval"`
	Outcome   string `json:"outcome"`
	Reason    string `json:"reason,omitempty"`
	Message   string `json:"message"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest(userID int64) (*checkAvailability.Request, error) {
	start, err := time.ParseInLocation(domain.DateTimeFormat, r.Start, time.Local)
	if err != nil {
		return nil, err
	}
	end, err := time.ParseInLocation(domain.DateTimeFormat, r.End, time.Local)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		UserID:     userID,
		CalendarID: r.CalendarID,
		Guests:     r.Guests,
		Start:      start,
		End:        end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *CheckAvailabilityResponse {
	return &CheckAvailabilityResponse{
		Available: resp.Available,
		Approval:  resp.Approval,
		Outcome:   resp.Outcome,
		Reason:    resp.Reason,
		Message:   resp.Message,
	}
}
