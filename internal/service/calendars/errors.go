package calendars

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда календарь не найден
	ErrCalendarNotFound = errors.New("calendar not found")

	// ErrCalendarAlreadyExists возвращается при конфликте ID или названия
	ErrCalendarAlreadyExists = errors.New("calendar already exists")

	// ErrServiceNotFound возвращается, когда сервис бронирования не найден
	ErrServiceNotFound = errors.New("reservation service not found")

	// ErrMemberNotFound возвращается, когда участник не существует
	ErrMemberNotFound = errors.New("member not found")

	// ErrMiniServiceNotFound возвращается, когда мини-сервис не принадлежит сервису
	ErrMiniServiceNotFound = errors.New("mini service not found in reservation service")

	// ErrCollisionCalendarNotFound возвращается, когда календарь из списка
	// коллизий не существует
	ErrCollisionCalendarNotFound = errors.New("collision calendar not found")

	// ErrAccessDenied возвращается, когда у участника нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
