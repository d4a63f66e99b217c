package get_user_events

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dormclub/ReservationService/internal/api/handlers"
	"github.com/dormclub/ReservationService/internal/api/middleware"
	"github.com/dormclub/ReservationService/internal/service/events/models"
)

const (
	msgInvalidUserID = "некорректный ID участника"
	msgMissingUserID = "отсутствует ID участника"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/users/{userId}/events?activeOnly=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	pathUserID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/events - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{id}/events - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Участник видит только собственную историю бронирований
	if pathUserID != userID {
		h.logger.Warn("GET /users/{id}/events - Access denied: path_user_id=%d, user_id=%d", pathUserID, userID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	result, err := h.service.GetUserEvents(r.Context(), &models.GetUserEventsRequest{
		UserID:     userID,
		ActiveOnly: activeOnly,
	})
	if err != nil {
		h.logger.Error("GET /users/{id}/events - Failed to get events: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{id}/events - Events retrieved successfully: user_id=%d, total=%d", userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
