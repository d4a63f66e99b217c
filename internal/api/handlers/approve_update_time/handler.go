package approve_update_time

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
	msgNoPending     = "событие не ожидает подтверждения переноса"
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

// Handle PATCH /api/v1/events/{eventId}/time/approve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /events/{id}/time/approve - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err := h.service.ApproveUpdateTime(r.Context(), eventID, &models.ApproveUpdateTimeRequest{UserID: userID})
	if err != nil {
		switch {
		case errors.Is(err, events.ErrEventNotFound):
			h.logger.Warn("PATCH /events/{id}/time/approve - Event not found: event_id=%s", eventID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, events.ErrAccessDenied), errors.Is(err, events.ErrMemberNotFound):
			h.logger.Warn("PATCH /events/{id}/time/approve - Access denied: event_id=%s, user_id=%d", eventID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, events.ErrNotAwaitingApproval):
			h.logger.Warn("PATCH /events/{id}/time/approve - No pending time update: event_id=%s", eventID)
			handlers.RespondError(w, http.StatusConflict, msgNoPending)

		default:
			h.logger.Error("PATCH /events/{id}/time/approve - Failed to approve time update: event_id=%s, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /events/{id}/time/approve - Time update approved successfully: event_id=%s, user_id=%d", eventID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
