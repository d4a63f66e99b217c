package request_update_time

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dormclub/ReservationService/internal/api/handlers"
	"github.com/dormclub/ReservationService/internal/api/middleware"
	"github.com/dormclub/ReservationService/internal/service/events"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDatetime    = "некорректный формат времени, ожидается YYYY-MM-DDTHH:MM:SS"
	msgMissingUserID      = "отсутствует ID участника"
	msgNotFound           = "событие не найдено"
	msgForbidden          = "доступ запрещен"
	msgCannotUpdate       = "перенос времени недоступен для этого события"
)

type Handler struct {
	service EventService
	logger  Logger
}

func NewHandler(service EventService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/events/{eventId}/time
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /events/{id}/time - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /events/{id}/time - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(userID)
	if err != nil {
		h.logger.Warn("PATCH /events/{id}/time - Failed to parse datetime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDatetime)
		return
	}

	if err := h.service.RequestUpdateTime(r.Context(), eventID, serviceReq); err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			h.logger.Warn("PATCH /events/{id}/time - Event not found: event_id=%s", eventID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, events.ErrAccessDenied):
			h.logger.Warn("PATCH /events/{id}/time - Access denied: event_id=%s, user_id=%d", eventID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, events.ErrCannotUpdateTime):
			h.logger.Warn("PATCH /events/{id}/time - Cannot update time: event_id=%s", eventID)
			handlers.RespondError(w, http.StatusConflict, msgCannotUpdate)

		case errors.Is(err, events.ErrInvalidInput):
			h.logger.Warn("PATCH /events/{id}/time - Invalid interval: event_id=%s, error=%v", eventID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /events/{id}/time - Failed to request time update: event_id=%s, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /events/{id}/time - Time update requested successfully: event_id=%s, user_id=%d", eventID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
