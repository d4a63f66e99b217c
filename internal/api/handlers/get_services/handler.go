package get_services

import (
	"net/http"

	"github.com/dormclub/ReservationService/internal/api/handlers"
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

// Handle GET /api/v1/services?all=true
// Без параметра all возвращаются только публичные сервисы
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	publicOnly := r.URL.Query().Get("all") != "true"

	result, err := h.service.ListServices(r.Context(), publicOnly)
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Services listed: total=%d, public_only=%t", result.Total, publicOnly)
	handlers.RespondJSON(w, http.StatusOK, result)
}
