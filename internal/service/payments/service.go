package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
	paymentRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-ParkingService/internal/service/payments/models"
)

// Service сервис для чтения платежей и формирования счетов.
// Платежи создаются только при выезде - здесь доступ только на чтение.
type Service struct {
	paymentRepo PaymentRepository
	bookingRepo BookingRepository
	parkingRepo ParkingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(paymentRepo PaymentRepository, bookingRepo BookingRepository, parkingRepo ParkingRepository, logger Logger) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		parkingRepo: parkingRepo,
		logger:      logger,
	}
}

// GetByBookingID получает платеж по ID бронирования
func (s *Service) GetByBookingID(ctx context.Context, bookingID int64) (*models.PaymentResponse, error) {
	payment, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("GetByBookingID: payment for booking id=%d not found", bookingID)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("GetByBookingID: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetByBookingID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPayment(payment), nil
}

// GenerateBill формирует счет по завершенному бронированию.
// Основной источник - сохраненный платеж; если платежа нет, сумма
// пересчитывается по сохраненному интервалу стоянки и текущей ставке
// парковки. До выезда счет не формируется.
func (s *Service) GenerateBill(ctx context.Context, bookingID int64) (*models.BillResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GenerateBill: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GenerateBill: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GenerateBill - repository error: %v", ErrInternal, err)
	}

	if !booking.HasExited() {
		s.logger.Warn("GenerateBill: booking id=%d has not exited yet", bookingID)
		return nil, ErrNotExited
	}

	bill := &models.BillResponse{
		BookingID:   booking.ID,
		FullName:    booking.FullName,
		PlateNumber: booking.PlateNumber,
		EntryTime:   booking.EntryTime.Format(time.RFC3339),
		ExitTime:    booking.ExitTime.Format(time.RFC3339),
	}

	var lot *domain.ParkingLot
	if booking.ParkingID != nil {
		lot, err = s.parkingRepo.GetByID(ctx, *booking.ParkingID)
		if err != nil && !errors.Is(err, parkingRepo.ErrParkingNotFound) {
			s.logger.Error("GenerateBill: parking lookup failed for booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: GenerateBill - parking lookup: %v", ErrInternal, err)
		}
	}
	if lot != nil {
		bill.ParkingName = lot.ParkingName
		bill.FeePerHour = lot.FeePerHour
	}

	duration, _, calcErr := domain.CalculateCharge(booking.EntryTime, *booking.ExitTime, 0)
	if calcErr == nil {
		bill.DurationHours = duration
	}

	payment, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil && !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
		s.logger.Error("GenerateBill: payment lookup failed for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GenerateBill - payment lookup: %v", ErrInternal, err)
	}

	if payment != nil {
		bill.Amount = payment.Amount
		bill.ReceiptNumber = payment.ReceiptNumber
		return bill, nil
	}

	// Платеж по какой-то причине отсутствует - пересчитываем сумму
	// по сохраненному интервалу, счет без номера квитанции
	if lot != nil {
		if _, amount, err := domain.CalculateCharge(booking.EntryTime, *booking.ExitTime, lot.FeePerHour); err == nil {
			bill.Amount = amount
		}
	}
	s.logger.Warn("GenerateBill: no payment stored for booking id=%d, amount recomputed", bookingID)

	return bill, nil
}
