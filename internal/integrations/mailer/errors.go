package mailer

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mailer client: internal error")

	// ErrServiceDegraded возвращается при применении graceful degradation.
	// Бронь уже зафиксирована; недоставленное письмо ее не отменяет
	ErrServiceDegraded = errors.New("mail gateway unavailable: graceful degradation applied")
)
