package update_calendar

import (
	"context"

	"github.com/dormclub/ReservationService/internal/service/calendars/models"
)

type CalendarService interface {
	Update(ctx context.Context, id string, req *models.UpdateCalendarRequest) (*models.CalendarResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
