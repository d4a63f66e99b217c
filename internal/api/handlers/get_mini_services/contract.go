package get_mini_services

import (
	"context"

	"github.com/dormclub/ReservationService/internal/service/catalog/models"
)

// CatalogService сервис каталога бронирования
type CatalogService interface {
	ListMiniServices(ctx context.Context, serviceID int64) (*models.MiniServiceListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
