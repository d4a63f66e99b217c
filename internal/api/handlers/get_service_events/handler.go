package get_service_events

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
	msgMissingUserID   = "отсутствует ID участника"
	msgInvalidState    = "некорректное состояние события"
	msgServiceNotFound = "сервис бронирования не найден"
	msgForbidden       = "доступ запрещен"
)

// defaultState менеджер по умолчанию разбирает очередь ожидающих броней
const defaultState = "not_approved"

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

// Handle GET /api/v1/services/{alias}/events?state=not_approved
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	alias := mux.Vars(r)["alias"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /services/{alias}/events - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		state = defaultState
	}

	result, err := h.service.GetServiceEvents(r.Context(), &models.GetServiceEventsRequest{
		UserID:       userID,
		ServiceAlias: alias,
		State:        state,
	})
	if err != nil {
		switch {
		case errors.Is(err, events.ErrInvalidInput):
			h.logger.Warn("GET /services/{alias}/events - Invalid state: service=%s, state=%s", alias, state)
			handlers.RespondBadRequest(w, msgInvalidState)

		case errors.Is(err, events.ErrServiceNotFound):
			h.logger.Warn("GET /services/{alias}/events - Service not found: service=%s", alias)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, events.ErrAccessDenied), errors.Is(err, events.ErrMemberNotFound):
			h.logger.Warn("GET /services/{alias}/events - Access denied: service=%s, user_id=%d", alias, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /services/{alias}/events - Failed to get events: service=%s, error=%v", alias, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{alias}/events - Events retrieved successfully: service=%s, total=%d", alias, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
