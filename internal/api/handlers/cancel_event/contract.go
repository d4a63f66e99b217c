package cancel_event

import (
	"context"

	"github.com/dormclub/ReservationService/internal/service/events/models"
)

type EventService interface {
	Cancel(ctx context.Context, eventID string, req *models.CancelEventRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
