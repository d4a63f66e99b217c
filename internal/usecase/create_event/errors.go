package create_event

import "errors"

var (
	// ErrMemberNotFound возвращается, когда участник не существует
	ErrMemberNotFound = errors.New("create_event: member not found")

	// ErrCalendarNotFound возвращается, когда календарь не найден
	ErrCalendarNotFound = errors.New("create_event: calendar not found")

	// ErrServiceNotFound возвращается, когда сервис бронирования не найден
	ErrServiceNotFound = errors.New("create_event: reservation service not found")

	// ErrMiniServiceNotFound возвращается, когда запрошенный мини-сервис
	// недоступен на этом календаре
	ErrMiniServiceNotFound = errors.New("create_event: mini service not available on this calendar")

	// ErrSlotTaken возвращается, когда запрошенное окно пересекается
	// с существующей бронью группы коллизий
	ErrSlotTaken = errors.New("create_event: slot already booked")

	// ErrRejected возвращается при нарушении правил бронирования
	ErrRejected = errors.New("create_event: reservation rejected")

	// ErrUnavailableForEvaluation возвращается, когда внешний источник
	// (календарь или профиль участника) недоступен. Недоступность никогда
	// не трактуется как свободный слот или отсутствие прав.
	ErrUnavailableForEvaluation = errors.New("create_event: unavailable for evaluation")

	// ErrEventAlreadyExists возвращается при повторном сохранении события
	ErrEventAlreadyExists = errors.New("create_event: event already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_event: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_event: internal error")
)
