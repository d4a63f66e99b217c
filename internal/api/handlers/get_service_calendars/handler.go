package get_service_calendars

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dormclub/ReservationService/internal/api/handlers"
)

const (
	msgInvalidServiceID = "некорректный ID сервиса бронирования"
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

// Handle GET /api/v1/services/{serviceId}/calendars
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/calendars - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.service.ListByService(r.Context(), serviceID)
	if err != nil {
		h.logger.Error("GET /services/{id}/calendars - Failed to list calendars: service_id=%d, error=%v", serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services/{id}/calendars - Calendars retrieved successfully: service_id=%d, total=%d",
		serviceID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
