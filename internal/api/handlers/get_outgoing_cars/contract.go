package get_outgoing_cars

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

type BookingService interface {
	GetOutgoing(ctx context.Context, from, to time.Time) (*models.OutgoingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
