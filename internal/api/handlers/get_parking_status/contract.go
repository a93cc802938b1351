package get_parking_status

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/parking/models"
)

type ParkingService interface {
	GetWithOccupancy(ctx context.Context, id int64) (*models.ParkingStatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
