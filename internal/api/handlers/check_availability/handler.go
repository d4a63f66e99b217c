package check_availability

import (
	"errors"
	"net/http"

	"github.com/dormclub/ReservationService/internal/api/handlers"
	"github.com/dormclub/ReservationService/internal/api/middleware"
	checkAvailability "github.com/dormclub/ReservationService/internal/usecase/check_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDatetime    = "некорректный формат времени, ожидается YYYY-MM-DDTHH:MM:SS"
	msgMissingUserID      = "отсутствует ID участника"
	msgMemberNotFound     = "участник не найден"
	msgCalendarNotFound   = "календарь не найден"
	msgServiceNotFound    = "сервис бронирования не найден"
	msgUnavailable        = "сервис временно не может оценить заявку, попробуйте позже"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/events/check
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /events/check - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CheckAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /events/check - Failed to parse datetime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDatetime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("POST /events/check - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, checkAvailability.ErrMemberNotFound):
			h.logger.Warn("POST /events/check - Member not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, checkAvailability.ErrCalendarNotFound):
			h.logger.Warn("POST /events/check - Calendar not found: calendar_id=%s", req.CalendarID)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, checkAvailability.ErrServiceNotFound):
			h.logger.Warn("POST /events/check - Service not found: calendar_id=%s", req.CalendarID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, checkAvailability.ErrUnavailableForEvaluation):
			h.logger.Error("POST /events/check - Unavailable for evaluation: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUnavailable)

		default:
			h.logger.Error("POST /events/check - Failed to check availability: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /events/check - Availability checked: user_id=%d, calendar_id=%s, outcome=%s",
		userID, req.CalendarID, result.Outcome)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
