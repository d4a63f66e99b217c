package delete_calendar

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

// Handle DELETE /api/v1/calendars/{calendarId}?hard=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	calendarID := mux.Vars(r)["calendarId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /calendars/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.DeleteCalendarRequest{
		UserID: userID,
		Hard:   r.URL.Query().Get("hard") == "true",
	}

	if err := h.service.Delete(r.Context(), calendarID, req); err != nil {
		switch {
		case errors.Is(err, calendars.ErrCalendarNotFound):
			h.logger.Warn("DELETE /calendars/{id} - Calendar not found: calendar_id=%s", calendarID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, calendars.ErrAccessDenied), errors.Is(err, calendars.ErrMemberNotFound):
			h.logger.Warn("DELETE /calendars/{id} - Access denied: calendar_id=%s, user_id=%d", calendarID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /calendars/{id} - Failed to delete calendar: calendar_id=%s, error=%v", calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /calendars/{id} - Calendar deleted: calendar_id=%s, user_id=%d, hard=%t", calendarID, userID, req.Hard)
	w.WriteHeader(http.StatusNoContent)
}
