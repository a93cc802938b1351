package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных.
	// Ошибка вызывающей стороны, запрос не должен повторяться.
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrParkingNotFound возвращается, когда указанная парковка не найдена
	ErrParkingNotFound = errors.New("create_booking: parking lot not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
