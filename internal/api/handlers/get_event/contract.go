package get_event

import (
	"context"

	"github.com/dormclub/ReservationService/internal/service/events/models"
)

type EventService interface {
	GetByID(ctx context.Context, id string, userID int64) (*models.EventResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
