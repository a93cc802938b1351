package domain

import (
	"errors"
	"time"
)

// ErrInvalidDuration возвращается, когда время выезда не позже времени въезда.
// Такая пара таймстемпов - аномалия данных, вызывающая сторона должна
// отклонить переход, а не выставить счет.
var ErrInvalidDuration = errors.New("domain: exit time must be after entry time")

// CalculateCharge вычисляет плату за стоянку по почасовой ставке.
// Длительность округляется ВВЕРХ до целого часа: любая часть часа
// оплачивается как полный час, стоянка короче часа - как один час.
func CalculateCharge(entry, exit time.Time, feePerHour float64) (durationHours int, amount float64, err error) {
	if !exit.After(entry) {
		return 0, 0, ErrInvalidDuration
	}

	// Целочисленное округление вверх, без плавающей точки
	d := exit.Sub(entry)
	hours := int64((d + time.Hour - time.Nanosecond) / time.Hour)

	return int(hours), float64(hours) * feePerHour, nil
}
