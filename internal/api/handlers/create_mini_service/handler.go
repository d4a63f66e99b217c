package create_mini_service

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dormclub/ReservationService/internal/api/handlers"
	"github.com/dormclub/ReservationService/internal/api/middleware"
	"github.com/dormclub/ReservationService/internal/service/catalog"
	"github.com/dormclub/ReservationService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID участника"
	msgInvalidServiceID   = "некорректный ID сервиса"
	msgServiceNotFound    = "сервис бронирования не найден"
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

// Handle POST /api/v1/services/{serviceId}/mini-services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /services/{id}/mini-services - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /services/{id}/mini-services - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateMiniServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services/{id}/mini-services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.CreateMiniService(r.Context(), serviceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /services/{id}/mini-services - Invalid input: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("POST /services/{id}/mini-services - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrAccessDenied), errors.Is(err, catalog.ErrMemberNotFound):
			h.logger.Warn("POST /services/{id}/mini-services - Access denied: service_id=%d, user_id=%d", serviceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /services/{id}/mini-services - Failed to create mini service: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services/{id}/mini-services - Mini service created: mini_service_id=%d, service_id=%d, user_id=%d", result.ID, serviceID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
