package delete_calendar

import (
	"context"

	"github.com/dormclub/ReservationService/internal/service/calendars/models"
)

// CalendarService сервис управления календарями
type CalendarService interface {
	Delete(ctx context.Context, id string, req *models.DeleteCalendarRequest) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
