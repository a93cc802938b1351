package exit_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("exit_booking: booking not found")

	// ErrAlreadyExited возвращается при повторной попытке выезда.
	// Повторный выезд отклоняется, а не тарифицируется заново.
	ErrAlreadyExited = errors.New("exit_booking: booking already exited")

	// ErrInvalidStatus возвращается, когда статус бронирования не допускает выезд
	// (pending/accepted/rejected/cancelled не участвуют в физическом потоке)
	ErrInvalidStatus = errors.New("exit_booking: booking status does not allow exit")

	// ErrNoParkingAssigned возвращается для бронирований без парковки:
	// почасовая ставка берется из парковки, без нее счет не посчитать
	ErrNoParkingAssigned = errors.New("exit_booking: booking has no parking lot assigned")

	// ErrParkingNotFound возвращается, когда парковка бронирования не найдена
	ErrParkingNotFound = errors.New("exit_booking: parking lot not found")

	// ErrInvalidDuration возвращается при exit_time <= entry_time.
	// Аномалия данных - логируется как подозрительная, переход отклоняется.
	ErrInvalidDuration = errors.New("exit_booking: invalid parking duration")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("exit_booking: internal error")
)
