package get_calendar

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dormclub/ReservationService/internal/api/handlers"
	"github.com/dormclub/ReservationService/internal/service/calendars"
)

const (
	msgNotFound = "календарь не найден"
)

type Handler struct {
	service CalendarService
	logger  Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendars/{calendarId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	calendarID := mux.Vars(r)["calendarId"]

	calendar, err := h.service.GetByID(r.Context(), calendarID)
	if err != nil {
		switch {
		case errors.Is(err, calendars.ErrCalendarNotFound):
			h.logger.Warn("GET /calendars/{id} - Calendar not found: calendar_id=%s", calendarID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /calendars/{id} - Failed to get calendar: calendar_id=%s, error=%v", calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calendars/{id} - Calendar retrieved successfully: calendar_id=%s", calendarID)
	handlers.RespondJSON(w, http.StatusOK, calendar)
}
