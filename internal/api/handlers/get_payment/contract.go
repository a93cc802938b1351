package get_payment

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/payments/models"
)

type PaymentService interface {
	GetByBookingID(ctx context.Context, bookingID int64) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
