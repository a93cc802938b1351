package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/notifyservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	parkingRepo  ParkingRepository
	notifier     Notifier
	timeProvider TimeProvider
	validate     *validator.Validate
	approvalMode bool
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// approvalMode выбирает поток деплоймента: false - физический поток
// въезд/выезд (бронирование сразу active), true - поток подтверждения
// (бронирование создается pending и ждет решения администратора).
func NewUseCase(
	bookingRepo BookingRepository,
	parkingRepo ParkingRepository,
	notifier Notifier,
	approvalMode bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		parkingRepo:  parkingRepo,
		notifier:     notifier,
		timeProvider: &RealTimeProvider{},
		validate:     validator.New(),
		approvalMode: approvalMode,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: plate=%s, email=%s", req.PlateNumber, req.Email)

	// 1. Валидация входных данных - до любой записи в хранилище
	if err := uc.validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Если парковка указана, проверяем что она существует
	if req.ParkingID != nil {
		if _, err := uc.parkingRepo.GetByID(ctx, *req.ParkingID); err != nil {
			if errors.Is(err, parkingRepo.ErrParkingNotFound) {
				uc.logger.Warn("CreateBooking: parking id=%d not found", *req.ParkingID)
				return nil, ErrParkingNotFound
			}
			uc.logger.Error("CreateBooking: failed to get parking id=%d: %v", *req.ParkingID, err)
			return nil, fmt.Errorf("%w: failed to get parking: %v", ErrInternal, err)
		}
	}

	// 3. Статус зависит от режима деплоймента
	status := domain.StatusActive
	if uc.approvalMode {
		status = domain.StatusPending
	}

	booking := &domain.Booking{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		PlateNumber: req.PlateNumber,
		UserID:      req.UserID,
		ParkingID:   req.ParkingID,
		EntryTime:   uc.timeProvider.Now(),
		ExitTime:    nil,
		Status:      status,
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s", created.ID, created.Status)

	// 4. Уведомление отправляется после записи, вне какой-либо транзакции.
	// Недоставка логируется и никогда не откатывает бронирование.
	if err := uc.notifier.SendWithGracefulDegradation(ctx, notifyservice.Notification{
		Email:   created.Email,
		Subject: "Booking confirmation",
		Message: fmt.Sprintf("Booking %d for plate %s has been registered", created.ID, created.PlateNumber),
	}); err != nil {
		uc.logger.Warn("CreateBooking: confirmation not delivered for booking id=%d: %v", created.ID, err)
	}

	return &Response{
		ID:          created.ID,
		FullName:    created.FullName,
		Email:       created.Email,
		Phone:       created.Phone,
		PlateNumber: created.PlateNumber,
		UserID:      created.UserID,
		ParkingID:   created.ParkingID,
		EntryTime:   created.EntryTime,
		Status:      string(created.Status),
		CreatedAt:   created.CreatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func (uc *UseCase) validateRequest(req *Request) error {
	if err := uc.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			first := validationErrs[0]
			return fmt.Errorf("%w: field %s failed on %s", ErrInvalidInput, first.Field(), first.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.ParkingID != nil && *req.ParkingID <= 0 {
		return fmt.Errorf("%w: parkingID must be positive", ErrInvalidInput)
	}
	if req.UserID != nil && *req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	return nil
}
