package get_calendar

import (
	"context"

	"github.com/dormclub/ReservationService/internal/service/calendars/models"
)

type CalendarService interface {
	GetByID(ctx context.Context, id string) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
