package memberapi

import "errors"

var (
	// ErrMemberNotFound возвращается, когда участник не существует
	ErrMemberNotFound = errors.New("member not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("memberapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса участников
	ErrInvalidResponse = errors.New("memberapi client: invalid response")

	// ErrUnavailable возвращается при недоступности сервиса участников.
	// Без профиля невозможно определить уровень доступа, поэтому
	// вызывающая сторона отказывает в оценке заявки.
	ErrUnavailable = errors.New("member service unavailable")
)
