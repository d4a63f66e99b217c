package get_event

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dormclub/ReservationService/internal/api/handlers"
	"github.com/dormclub/ReservationService/internal/api/middleware"
	"github.com/dormclub/ReservationService/internal/service/events"
)

const (
	msgInvalidEventID = "некорректный ID события"
	msgMissingUserID  = "отсутствует ID участника"
	msgNotFound       = "событие не найдено"
	msgForbidden      = "доступ запрещен"
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

// Handle GET /api/v1/events/{eventId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]
	if eventID == "" {
		h.logger.Warn("GET /events/{id} - Empty event ID")
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /events/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	event, err := h.service.GetByID(r.Context(), eventID, userID)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			h.logger.Warn("GET /events/{id} - Event not found: event_id=%s", eventID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, events.ErrAccessDenied):
			h.logger.Warn("GET /events/{id} - Access denied: event_id=%s, user_id=%d", eventID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /events/{id} - Failed to get event: event_id=%s, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /events/{id} - Event retrieved successfully: event_id=%s, user_id=%d", eventID, userID)
	handlers.RespondJSON(w, http.StatusOK, event)
}
