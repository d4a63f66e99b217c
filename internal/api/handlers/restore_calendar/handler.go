package restore_calendar

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dormclub/ReservationService/internal/api/handlers"
	"github.com/dormclub/ReservationService/internal/api/middleware"
	"github.com/dormclub/ReservationService/internal/service/calendars"
	"github.com/dormclub/ReservationService/internal/service/calendars/models"
)

const (
	msgMissingUserID = "отсутствует ID участника"
	msgNotFound      = "календарь не найден"
	msgForbidden     = "доступ запрещен"
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

// Handle PATCH /api/v1/calendars/{calendarId}/restore
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	calendarID := mux.Vars(r)["calendarId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /calendars/{id}/restore - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.RestoreCalendarRequest{UserID: userID}

	result, err := h.service.Restore(r.Context(), calendarID, req)
	if err != nil {
		switch {
		case errors.Is(err, calendars.ErrCalendarNotFound):
			h.logger.Warn("PATCH /calendars/{id}/restore - Calendar not found: calendar_id=%s", calendarID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, calendars.ErrAccessDenied), errors.Is(err, calendars.ErrMemberNotFound):
			h.logger.Warn("PATCH /calendars/{id}/restore - Access denied: calendar_id=%s, user_id=%d", calendarID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /calendars/{id}/restore - Failed to restore calendar: calendar_id=%s, error=%v", calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /calendars/{id}/restore - Calendar restored: calendar_id=%s, user_id=%d", calendarID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
