package exit_booking

import "time"

// Response модель ответа с результатом выезда
type Response struct {
	ID          int64
	PlateNumber string
	ParkingID   *int64
	EntryTime   time.Time
	ExitTime    time.Time
	Status      string

	DurationHours int     // Длительность стоянки, округленная вверх до часа
	AmountCharged float64 // Начисленная сумма
	ReceiptNumber string  // Номер квитанции созданного платежа
}
