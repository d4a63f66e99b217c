package events

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("event not found")

	// ErrCalendarNotFound возвращается, когда календарь не найден
	ErrCalendarNotFound = errors.New("calendar not found")

	// ErrServiceNotFound возвращается, когда сервис бронирования не найден
	ErrServiceNotFound = errors.New("reservation service not found")

	// ErrMemberNotFound возвращается, когда участник не существует
	ErrMemberNotFound = errors.New("member not found")

	// ErrAccessDenied возвращается, когда у участника нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда событие нельзя отменить
	ErrCannotCancel = errors.New("event cannot be canceled")

	// ErrCannotUpdateTime возвращается, когда перенос времени недоступен
	ErrCannotUpdateTime = errors.New("event time cannot be updated")

	// ErrNotAwaitingApproval возвращается, когда событие не ожидает решения менеджера
	ErrNotAwaitingApproval = errors.New("event is not awaiting approval")

	// ErrInvalidState возвращается при недопустимом состоянии события в фильтре
	ErrInvalidState = errors.New("invalid event state")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
