package schedule

import "time"

// Event модель события внешнего календаря
type Event struct {
	ID          string    `json:"id"`
	CalendarID  string    `json:"calendar_id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// InsertEventRequest запрос на добавление события во внешний календарь
type InsertEventRequest struct {
	CalendarID  string    `json:"calendar_id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// UpdateEventRequest запрос на изменение события внешнего календаря
type UpdateEventRequest struct {
	Summary string    `json:"summary,omitempty"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// ErrorResponse модель ошибки календарного сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
