package domain

import "time"

// ParkingLot represents a parking lot managed by administrators
type ParkingLot struct {
	ID          int64
	ParkingCode string // Уникальный код парковки (например, "PK-001")
	ParkingName string
	Location    string
	TotalSlots  int     // Всего сконфигурированных мест, >= 0
	FeePerHour  float64 // Почасовая ставка, >= 0

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Occupancy occupancy report for a parking lot.
// FreeSlots может быть отрицательным при перебронировании - это осознанно
// не обрезается до нуля, чтобы операторы видели перегруз.
type Occupancy struct {
	OccupiedSlots int
	FreeSlots     int
}

// NewOccupancy derives an occupancy report from the configured capacity
// and the number of bookings currently without an exit time
func NewOccupancy(totalSlots, occupied int) Occupancy {
	return Occupancy{
		OccupiedSlots: occupied,
		FreeSlots:     totalSlots - occupied,
	}
}

// IsOverbooked returns true when more cars are parked than slots configured
func (o Occupancy) IsOverbooked() bool {
	return o.FreeSlots < 0
}
