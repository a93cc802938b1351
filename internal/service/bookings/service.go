package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: чтение, отчеты
// и административные переходы статусов (без расчета оплаты)
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Пользователь видит только свое бронирование, администратор - любое.
func (s *Service) GetByID(ctx context.Context, id int64, principal domain.Principal) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, principal.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !principal.IsAdmin() && !booking.BelongsTo(principal.UserID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", principal.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя.
// Пользователь видит только свою историю, администратор - любую.
func (s *Service) GetUserBookings(ctx context.Context, userID int64, principal domain.Principal) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d", userID)

	if !principal.IsAdmin() && principal.UserID != userID {
		s.logger.Warn("GetUserBookings: access denied for user=%d to history of user=%d", principal.UserID, userID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{UserID: &userID})
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), userID)
	return models.FromDomainBookingList(bookings), nil
}

// List получает бронирования с фильтрацией по периоду, подстроке номера
// (без учета регистра), статусу и парковке. Сортировка - сначала новые.
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetIncoming получает автомобили, находящиеся на парковках в данный момент
// (exit_time не проставлен), недавно въехавшие - первыми
func (s *Service) GetIncoming(ctx context.Context) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.ListParked(ctx)
	if err != nil {
		s.logger.Error("GetIncoming: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetIncoming - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetIncoming: %d cars currently parked", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// GetOutgoing получает автомобили, выехавшие за период, и общую сумму
// начислений. Завершенное бронирование без платежа участвует с нулевой
// суммой - сводка не ломается из-за отсутствующего платежа.
func (s *Service) GetOutgoing(ctx context.Context, from, to time.Time) (*models.OutgoingResponse, error) {
	if !to.After(from) {
		s.logger.Warn("GetOutgoing: invalid range %s - %s", from, to)
		return nil, fmt.Errorf("%w: end of range must be after start", ErrInvalidInput)
	}

	items, err := s.bookingRepo.ListExitedWithPayments(ctx, from, to)
	if err != nil {
		s.logger.Error("GetOutgoing: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetOutgoing - repository error: %v", ErrInternal, err)
	}

	resp := &models.OutgoingResponse{
		Bookings: make([]models.BookingResponse, len(items)),
	}
	for i, item := range items {
		resp.Bookings[i] = *models.FromDomainBooking(&item.Booking)
		resp.TotalAmount += item.ChargedAmount()
	}

	s.logger.Info("GetOutgoing: %d cars exited between %s and %s, total=%.2f",
		len(items), from.Format(domain.DateFormat), to.Format(domain.DateFormat), resp.TotalAmount)
	return resp, nil
}

// GetCompletedSummary получает сводку по завершенным бронированиям за период:
// количество, список и сумма платежей (отсутствующий платеж считается нулем)
func (s *Service) GetCompletedSummary(ctx context.Context, from, to time.Time) (*models.CompletedSummaryResponse, error) {
	if !to.After(from) {
		s.logger.Warn("GetCompletedSummary: invalid range %s - %s", from, to)
		return nil, fmt.Errorf("%w: end of range must be after start", ErrInvalidInput)
	}

	items, err := s.bookingRepo.ListExitedWithPayments(ctx, from, to)
	if err != nil {
		s.logger.Error("GetCompletedSummary: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetCompletedSummary - repository error: %v", ErrInternal, err)
	}

	resp := &models.CompletedSummaryResponse{
		Bookings: make([]models.BookingResponse, 0, len(items)),
	}
	for _, item := range items {
		if item.Status != domain.StatusCompleted {
			continue
		}
		resp.Bookings = append(resp.Bookings, *models.FromDomainBooking(&item.Booking))
		resp.TotalAmount += item.ChargedAmount()
	}
	resp.TotalBookings = len(resp.Bookings)

	s.logger.Info("GetCompletedSummary: %d completed bookings, total=%.2f", resp.TotalBookings, resp.TotalAmount)
	return resp, nil
}

// Decide применяет решение администратора к pending-бронированию.
// Решение может быть только accepted или rejected; переход проверяется
// по таблице переходов - active-бронирование принять нельзя.
func (s *Service) Decide(ctx context.Context, bookingID int64, req *models.DecisionRequest) (*models.BookingResponse, error) {
	s.logger.Info("Decide: booking id=%d, decision=%s", bookingID, req.Decision)

	decision, err := models.ToDomainBookingStatus(req.Decision)
	if err != nil || !decision.IsDecision() {
		s.logger.Warn("Decide: invalid decision=%s for booking id=%d", req.Decision, bookingID)
		return nil, ErrInvalidStatus
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Decide: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Decide: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Decide - repository error: %v", ErrInternal, err)
	}

	if !booking.Status.CanTransitionTo(decision) {
		s.logger.Warn("Decide: transition %s -> %s not allowed for booking id=%d",
			booking.Status, decision, bookingID)
		return nil, ErrInvalidStatus
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, decision); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Decide: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Decide - repository error: %v", ErrInternal, err)
	}

	booking.Status = decision
	s.logger.Info("Decide: booking id=%d is now %s", bookingID, decision)
	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет активное бронирование без начисления оплаты
func (s *Service) Cancel(ctx context.Context, bookingID int64) error {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.Status.CanTransitionTo(domain.StatusCancelled) {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrInvalidStatus
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusCancelled); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking id=%d cancelled", bookingID)
	return nil
}

// Delete удаляет бронирование навсегда (только администраторы).
// Зависимый платеж удаляется каскадно. Отмены/восстановления нет.
func (s *Service) Delete(ctx context.Context, bookingID int64) error {
	s.logger.Info("Delete: deleting booking id=%d", bookingID)

	if err := s.bookingRepo.Delete(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: booking id=%d deleted", bookingID)
	return nil
}
