package update_parking

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/parking/models"
)

type ParkingService interface {
	Update(ctx context.Context, id int64, req *models.UpdateParkingRequest) (*models.ParkingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
