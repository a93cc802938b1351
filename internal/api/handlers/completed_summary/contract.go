package completed_summary

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

type BookingService interface {
	GetCompletedSummary(ctx context.Context, from, to time.Time) (*models.CompletedSummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
