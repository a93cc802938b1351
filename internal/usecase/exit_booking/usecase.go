package exit_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
)

// UseCase use case фиксации выезда: единственный переход, создающий платеж
type UseCase struct {
	bookingRepo  BookingRepository
	parkingRepo  ParkingRepository
	paymentRepo  PaymentRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	parkingRepo ParkingRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		parkingRepo:  parkingRepo,
		paymentRepo:  paymentRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет переход выезда для бронирования.
// Чтение бронирования, проставление exit_time со статусом и создание платежа
// выполняются в одной сериализуемой транзакции: либо применяются все три
// записи, либо ни одной. Строка блокируется через FOR UPDATE, а обновление
// exit_time дополнительно условное (WHERE exit_time IS NULL) - из двух
// конкурентных выездов второй получает ErrAlreadyExited и не создает
// второй платеж.
func (uc *UseCase) Execute(ctx context.Context, bookingID int64) (*Response, error) {
	uc.logger.Info("ExitBooking: booking id=%d", bookingID)

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Загружаем бронирование (внутри транзакции - с блокировкой строки)
		booking, err := uc.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ExitBooking: booking id=%d not found", bookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ExitBooking: failed to get booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Выезд одноразовый
		if booking.HasExited() {
			uc.logger.Warn("ExitBooking: booking id=%d already exited at %s", bookingID, booking.ExitTime)
			return ErrAlreadyExited
		}

		// 3. Переход допустим только из active
		if !booking.Status.CanTransitionTo(domain.StatusCompleted) {
			uc.logger.Warn("ExitBooking: booking id=%d has status=%s, exit not allowed", bookingID, booking.Status)
			return ErrInvalidStatus
		}

		// 4. Ставка берется из парковки - без нее счет не посчитать
		if booking.ParkingID == nil {
			uc.logger.Warn("ExitBooking: booking id=%d has no parking lot assigned", bookingID)
			return ErrNoParkingAssigned
		}

		lot, err := uc.parkingRepo.GetByID(txCtx, *booking.ParkingID)
		if err != nil {
			if errors.Is(err, parkingRepo.ErrParkingNotFound) {
				uc.logger.Warn("ExitBooking: parking id=%d not found for booking id=%d", *booking.ParkingID, bookingID)
				return ErrParkingNotFound
			}
			uc.logger.Error("ExitBooking: failed to get parking id=%d: %v", *booking.ParkingID, err)
			return fmt.Errorf("%w: failed to get parking: %v", ErrInternal, err)
		}

		// 5. Считаем плату: округление вверх до целого часа
		exitTime := uc.timeProvider.Now()
		durationHours, amount, err := domain.CalculateCharge(booking.EntryTime, exitTime, lot.FeePerHour)
		if err != nil {
			// exit <= entry - аномалия данных, логируем как подозрительную
			uc.logger.Error("ExitBooking: suspicious timestamps for booking id=%d: entry=%s, exit=%s",
				bookingID, booking.EntryTime, exitTime)
			return ErrInvalidDuration
		}

		// 6. Условное обновление exit_time + статус
		if err := uc.bookingRepo.MarkExited(txCtx, bookingID, exitTime); err != nil {
			if errors.Is(err, bookingRepo.ErrAlreadyExited) {
				uc.logger.Warn("ExitBooking: booking id=%d lost exit race", bookingID)
				return ErrAlreadyExited
			}
			uc.logger.Error("ExitBooking: failed to mark exited booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: failed to mark exited: %v", ErrInternal, err)
		}

		// 7. Создаем платеж - ровно один на бронирование
		payment, err := uc.paymentRepo.Create(txCtx, &domain.Payment{
			BookingID: bookingID,
			Amount:    amount,
		})
		if err != nil {
			uc.logger.Error("ExitBooking: failed to create payment for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}

		result = &Response{
			ID:            booking.ID,
			PlateNumber:   booking.PlateNumber,
			ParkingID:     booking.ParkingID,
			EntryTime:     booking.EntryTime,
			ExitTime:      exitTime,
			Status:        string(domain.StatusCompleted),
			DurationHours: durationHours,
			AmountCharged: amount,
			ReceiptNumber: payment.ReceiptNumber,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ExitBooking: booking id=%d exited, duration=%dh, charged=%.2f",
		result.ID, result.DurationHours, result.AmountCharged)

	return result, nil
}
