package get_service_calendars

import (
	"context"

	"github.com/dormclub/ReservationService/internal/service/calendars/models"
)

type CalendarService interface {
	ListByService(ctx context.Context, reservationServiceID int64) (*models.CalendarListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
