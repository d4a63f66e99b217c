package get_service

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dormclub/ReservationService/internal/api/handlers"
	"github.com/dormclub/ReservationService/internal/service/catalog"
)

const msgNotFound = "сервис бронирования не найден"

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

// Handle GET /api/v1/services/{serviceAlias}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	alias := mux.Vars(r)["serviceAlias"]

	result, err := h.service.GetServiceByAlias(r.Context(), alias)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("GET /services/{alias} - Service not found: alias=%s", alias)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /services/{alias} - Failed to get service: alias=%s, error=%v", alias, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
