package create_service

import (
	"errors"
	"net/http"

	"github.com/dormclub/ReservationService/internal/api/handlers"
	"github.com/dormclub/ReservationService/internal/api/middleware"
	"github.com/dormclub/ReservationService/internal/service/catalog"
	"github.com/dormclub/ReservationService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID участника"
	msgAlreadyExists      = "сервис с таким именем или алиасом уже существует"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /services - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.CreateService(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /services - Invalid input: error=%v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, catalog.ErrServiceAlreadyExists):
			h.logger.Warn("POST /services - Service already exists: alias=%s", req.Alias)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyExists)

		case errors.Is(err, catalog.ErrAccessDenied), errors.Is(err, catalog.ErrMemberNotFound):
			h.logger.Warn("POST /services - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /services - Failed to create service: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services - Service created: service_id=%d, alias=%s, user_id=%d", result.ID, result.Alias, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
