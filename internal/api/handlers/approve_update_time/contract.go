package approve_update_time

import (
	"context"

	"github.com/dormclub/ReservationService/internal/service/events/models"
)

type EventService interface {
	ApproveUpdateTime(ctx context.Context, eventID string, req *models.ApproveUpdateTimeRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
