package accesscard

import "errors"

var (
	// ErrCardNotFound возвращается, когда карта отсутствует в группе доступа
	ErrCardNotFound = errors.New("access card not found in group")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("accesscard client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от системы доступа
	ErrInvalidResponse = errors.New("accesscard client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Бронь уже подтверждена; недоступность системы доступа не отменяет ее,
	// но требует внимания дежурного менеджера.
	ErrServiceDegraded = errors.New("access card system unavailable: graceful degradation applied")
)
