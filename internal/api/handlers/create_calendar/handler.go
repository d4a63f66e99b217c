package create_calendar

import (
	"errors"
	"net/http"

	"github.com/dormclub/ReservationService/internal/api/handlers"
	"github.com/dormclub/ReservationService/internal/api/middleware"
	"github.com/dormclub/ReservationService/internal/service/calendars"
	"github.com/dormclub/ReservationService/internal/service/calendars/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID участника"
	msgServiceNotFound     = "сервис бронирования не найден"
	msgCollisionNotFound   = "календарь из списка коллизий не найден"
	msgMiniServiceNotFound = "мини-сервис не принадлежит сервису"
	msgAlreadyExists       = "календарь уже существует"
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

// Handle POST /api/v1/calendars
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /calendars - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateCalendarRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calendars - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, calendars.ErrInvalidInput):
			h.logger.Warn("POST /calendars - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, calendars.ErrServiceNotFound):
			h.logger.Warn("POST /calendars - Service not found: service_id=%d", req.ReservationServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, calendars.ErrCollisionCalendarNotFound):
			h.logger.Warn("POST /calendars - Collision calendar not found: error=%v", err)
			handlers.RespondBadRequest(w, msgCollisionNotFound)

		case errors.Is(err, calendars.ErrMiniServiceNotFound):
			h.logger.Warn("POST /calendars - Mini service not found: error=%v", err)
			handlers.RespondBadRequest(w, msgMiniServiceNotFound)

		case errors.Is(err, calendars.ErrCalendarAlreadyExists):
			h.logger.Warn("POST /calendars - Calendar already exists: calendar_id=%s", req.ID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyExists)

		case errors.Is(err, calendars.ErrAccessDenied), errors.Is(err, calendars.ErrMemberNotFound):
			h.logger.Warn("POST /calendars - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /calendars - Failed to create calendar: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calendars - Calendar created successfully: calendar_id=%s, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
