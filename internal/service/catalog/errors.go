package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда сервис бронирования не найден
	ErrServiceNotFound = errors.New("reservation service not found")

	// ErrServiceAlreadyExists возвращается при конфликте имени или алиаса
	ErrServiceAlreadyExists = errors.New("reservation service already exists")

	// ErrMemberNotFound возвращается, когда участник не существует
	ErrMemberNotFound = errors.New("member not found")

	// ErrAccessDenied возвращается, когда у участника нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
