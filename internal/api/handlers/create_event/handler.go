package create_event

import (
	"errors"
	"net/http"

	"github.com/dormclub/ReservationService/internal/api/handlers"
	"github.com/dormclub/ReservationService/internal/api/middleware"
	createEvent "github.com/dormclub/ReservationService/internal/usecase/create_event"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDatetime    = "некорректный формат времени, ожидается YYYY-MM-DDTHH:MM:SS"
	msgMissingUserID      = "отсутствует ID участника"
	msgMemberNotFound     = "участник не найден"
	msgCalendarNotFound   = "календарь не найден"
	msgServiceNotFound    = "сервис бронирования не найден"
	msgMiniServiceMissing = "мини-сервис недоступен на этом календаре"
	msgSlotTaken          = "выбранное время уже занято"
	msgUnavailable        = "сервис временно не может оценить заявку, попробуйте позже"
)

type Handler struct {
	useCase CreateEventUseCase
	logger  Logger
}

func NewHandler(useCase CreateEventUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /events - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /events - Failed to parse datetime: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDatetime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createEvent.ErrInvalidInput):
			h.logger.Warn("POST /events - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createEvent.ErrMemberNotFound):
			h.logger.Warn("POST /events - Member not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgMemberNotFound)

		case errors.Is(err, createEvent.ErrCalendarNotFound):
			h.logger.Warn("POST /events - Calendar not found: calendar_id=%s", req.CalendarID)
			handlers.RespondNotFound(w, msgCalendarNotFound)

		case errors.Is(err, createEvent.ErrServiceNotFound):
			h.logger.Warn("POST /events - Service not found: calendar_id=%s", req.CalendarID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createEvent.ErrMiniServiceNotFound):
			h.logger.Warn("POST /events - Mini service not available: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgMiniServiceMissing)

		case errors.Is(err, createEvent.ErrSlotTaken):
			h.logger.Warn("POST /events - Slot taken: user_id=%d, calendar_id=%s", userID, req.CalendarID)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createEvent.ErrRejected):
			h.logger.Warn("POST /events - Rejected: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, err.Error())

		case errors.Is(err, createEvent.ErrUnavailableForEvaluation):
			h.logger.Error("POST /events - Unavailable for evaluation: user_id=%d, error=%v", userID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUnavailable)

		default:
			h.logger.Error("POST /events - Failed to create event: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /events - Event created successfully: event_id=%s, user_id=%d, state=%s",
		result.ID, userID, result.State)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
