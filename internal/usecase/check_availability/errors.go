package check_availability

import "errors"

var (
	// ErrMemberNotFound возвращается, когда участник не существует
	ErrMemberNotFound = errors.New("check_availability: member not found")

	// ErrCalendarNotFound возвращается, когда календарь не найден
	ErrCalendarNotFound = errors.New("check_availability: calendar not found")

	// ErrServiceNotFound возвращается, когда сервис бронирования не найден
	ErrServiceNotFound = errors.New("check_availability: reservation service not found")

	// ErrUnavailableForEvaluation возвращается, когда внешний источник
	// недоступен и оценить занятость невозможно
	ErrUnavailableForEvaluation = errors.New("check_availability: unavailable for evaluation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
