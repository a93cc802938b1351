package parking

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ParkingRepository интерфейс репозитория парковок
type ParkingRepository interface {
	Create(ctx context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error)
	GetByID(ctx context.Context, id int64) (*domain.ParkingLot, error)
	List(ctx context.Context) ([]*domain.ParkingLot, error)
	Update(ctx context.Context, lot *domain.ParkingLot) error
}

// BookingRepository интерфейс репозитория бронирований
// (нужен только подсчет припаркованных для расчета занятости)
type BookingRepository interface {
	CountParkedByParkingID(ctx context.Context, parkingID int64) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
