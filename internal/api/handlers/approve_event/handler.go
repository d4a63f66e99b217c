package approve_event

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dormclub/ReservationService/internal/api/handlers"
	"github.com/dormclub/ReservationService/internal/api/middleware"
	"github.com/dormclub/ReservationService/internal/service/events"
	"github.com/dormclub/ReservationService/internal/service/events/models"
)

const (
	msgMissingUserID = "отсутствует ID участника"
	msgNotFound      = "событие не найдено"
	msgForbidden     = "доступ запрещен"
	msgNotAwaiting   = "событие не ожидает подтверждения"
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

// Handle PATCH /api/v1/events/{eventId}/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /events/{id}/approve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err := h.service.Approve(r.Context(), eventID, &models.ApproveEventRequest{UserID: userID})
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			h.logger.Warn("PATCH /events/{id}/approve - Event not found: event_id=%s", eventID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, events.ErrAccessDenied), errors.Is(err, events.ErrMemberNotFound):
			h.logger.Warn("PATCH /events/{id}/approve - Access denied: event_id=%s, user_id=%d", eventID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, events.ErrNotAwaitingApproval):
			h.logger.Warn("PATCH /events/{id}/approve - Not awaiting approval: event_id=%s", eventID)
			handlers.RespondError(w, http.StatusConflict, msgNotAwaiting)

		default:
			h.logger.Error("PATCH /events/{id}/approve - Failed to approve event: event_id=%s, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /events/{id}/approve - Event approved successfully: event_id=%s, user_id=%d", eventID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
