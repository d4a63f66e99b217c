package update_calendar

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
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID участника"
	msgNotFound            = "календарь не найден"
	msgCollisionNotFound   = "календарь из списка коллизий не найден"
	msgMiniServiceNotFound = "мини-сервис не принадлежит сервису"
	msgForbidden           = "доступ запрещен"
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

// Handle PUT /api/v1/calendars/{calendarId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	calendarID := mux.Vars(r)["calendarId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /calendars/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateCalendarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /calendars/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Update(r.Context(), calendarID, &req)
	if err != nil {
		switch {
		case errors.Is(err, calendars.ErrInvalidInput):
			h.logger.Warn("PUT /calendars/{id} - Invalid input: calendar_id=%s, error=%v", calendarID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, calendars.ErrCalendarNotFound):
			h.logger.Warn("PUT /calendars/{id} - Calendar not found: calendar_id=%s", calendarID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, calendars.ErrCollisionCalendarNotFound):
			h.logger.Warn("PUT /calendars/{id} - Collision calendar not found: error=%v", err)
			handlers.RespondBadRequest(w, msgCollisionNotFound)

		case errors.Is(err, calendars.ErrMiniServiceNotFound):
			h.logger.Warn("PUT /calendars/{id} - Mini service not found: error=%v", err)
			handlers.RespondBadRequest(w, msgMiniServiceNotFound)

		case errors.Is(err, calendars.ErrAccessDenied), errors.Is(err, calendars.ErrMemberNotFound):
			h.logger.Warn("PUT /calendars/{id} - Access denied: calendar_id=%s, user_id=%d", calendarID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /calendars/{id} - Failed to update calendar: calendar_id=%s, error=%v", calendarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /calendars/{id} - Calendar updated successfully: calendar_id=%s, user_id=%d", calendarID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
