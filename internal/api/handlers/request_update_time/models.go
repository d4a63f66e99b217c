package request_update_time

import (
	"time"

	"github.com/dormclub/ReservationService/internal/domain"
	"github.com/dormclub/ReservationService/internal/service/events/models"
)

// UpdateTimeRequest HTTP request model
type UpdateTimeRequest struct {
	Start string `json:"start"` // "2025-05-12T11:00:00"
	End   string `json:"end"`   // "2025-05-12T16:00:00"
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateTimeRequest) ToServiceRequest(userID int64) (*models.RequestUpdateTimeRequest, error) {
	start, err := time.ParseInLocation(domain.DateTimeFormat, r.Start, time.Local)
	if err != nil {
		return nil, err
	}
	end, err := time.ParseInLocation(domain.DateTimeFormat, r.End, time.Local)
	if err != nil {
		return nil, err
	}

	return &models.RequestUpdateTimeRequest{
		UserID: userID,
		Start:  start,
		End:    end,
	}, nil
}
