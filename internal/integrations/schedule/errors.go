package schedule

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие отсутствует во внешнем календаре
	ErrEventNotFound = errors.New("schedule client: event not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("schedule client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от календарного сервиса
	ErrInvalidResponse = errors.New("schedule client: invalid response")

	// ErrUnavailable возвращается при недоступности календарного сервиса.
	// Недоступность НИКОГДА не трактуется как отсутствие пересечений:
	// вызывающая сторона обязана отказать в оценке, а не подтвердить бронь.
	ErrUnavailable = errors.New("schedule service unavailable")
)
