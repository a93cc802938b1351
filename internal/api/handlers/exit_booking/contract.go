package exit_booking

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/usecase/exit_booking"
)

type ExitBookingUseCase interface {
	Execute(ctx context.Context, bookingID int64) (*exit_booking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
