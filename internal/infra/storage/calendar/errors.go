package calendar

import "errors"

var (
	// ErrCalendarNotFound возвращается, когда календарь не найден
	ErrCalendarNotFound = errors.New("calendar.repository: calendar not found")

	// ErrCalendarAlreadyExists возвращается при нарушении уникальности id или типа
	ErrCalendarAlreadyExists = errors.New("calendar.repository: calendar already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("calendar.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("calendar.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("calendar.repository: failed to scan row")
)
