package create_mini_service

import (
	"context"

	"github.com/dormclub/ReservationService/internal/service/catalog/models"
)

// CatalogService сервис каталога бронирования
type CatalogService interface {
	CreateMiniService(ctx context.Context, serviceID int64, req *models.CreateMiniServiceRequest) (*models.MiniServiceResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
