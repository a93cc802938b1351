package parking

import "errors"

var (
	// ErrParkingNotFound возвращается, когда парковка не найдена
	ErrParkingNotFound = errors.New("parking lot not found")

	// ErrDuplicateCode возвращается при попытке занять существующий код парковки
	ErrDuplicateCode = errors.New("parking code already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
