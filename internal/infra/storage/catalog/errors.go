package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда сервис бронирования не найден
	ErrServiceNotFound = errors.New("catalog.repository: reservation service not found")

	// ErrMiniServiceNotFound возвращается, когда мини-сервис не найден
	ErrMiniServiceNotFound = errors.New("catalog.repository: mini service not found")

	// ErrAlreadyExists возвращается при нарушении уникальности имени или алиаса
	ErrAlreadyExists = errors.New("catalog.repository: entity already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
