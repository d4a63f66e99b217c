package delete_service

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
	msgMissingUserID    = "отсутствует ID участника"
	msgInvalidServiceID = "некорректный ID сервиса"
	msgNotFound         = "сервис бронирования не найден"
	msgForbidden        = "доступ запрещен"
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

// Handle DELETE /api/v1/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /services/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.DeleteServiceRequest{UserID: userID}

	if err := h.service.DeleteService(r.Context(), serviceID, req); err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("DELETE /services/{id} - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrAccessDenied), errors.Is(err, catalog.ErrMemberNotFound):
			h.logger.Warn("DELETE /services/{id} - Access denied: service_id=%d, user_id=%d", serviceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /services/{id} - Failed to delete service: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /services/{id} - Service deleted: service_id=%d, user_id=%d", serviceID, userID)
	w.WriteHeader(http.StatusNoContent)
}
