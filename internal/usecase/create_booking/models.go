package create_booking

import "time"

// Request модель запроса на создание бронирования.
// Данные водителя и номер обязательны; владелец и парковка опциональны -
// публичное бронирование может не иметь ни того, ни другого.
type Request struct {
	FullName    string `validate:"required,max=200"`
	Email       string `validate:"required,email"`
	Phone       string `validate:"required,max=32"`
	PlateNumber string `validate:"required,max=20"`
	UserID      *int64
	ParkingID   *int64
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	FullName    string
	Email       string
	Phone       string
	PlateNumber string
	UserID      *int64
	ParkingID   *int64
	EntryTime   time.Time
	Status      string
	CreatedAt   time.Time
}
