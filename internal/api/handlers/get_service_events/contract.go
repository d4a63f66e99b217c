package get_service_events

import (
	"context"

	"github.com/dormclub/ReservationService/internal/service/events/models"
)

type EventService interface {
	GetServiceEvents(ctx context.Context, req *models.GetServiceEventsRequest) (*models.EventListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
