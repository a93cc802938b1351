package payments

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrNotExited возвращается при запросе счета для бронирования,
	// по которому автомобиль еще не выехал
	ErrNotExited = errors.New("booking has not exited yet")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
