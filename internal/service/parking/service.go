package parking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
	"github.com/m04kA/SMC-ParkingService/internal/service/parking/models"
)

// Service сервис для управления парковками и расчета занятости
type Service struct {
	parkingRepo ParkingRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса парковок
func NewService(parkingRepo ParkingRepository, bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		parkingRepo: parkingRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Create создает новую парковку (только администраторы)
func (s *Service) Create(ctx context.Context, req *models.CreateParkingRequest) (*models.ParkingResponse, error) {
	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	lot := &domain.ParkingLot{
		ParkingCode: strings.TrimSpace(req.ParkingCode),
		ParkingName: strings.TrimSpace(req.ParkingName),
		Location:    strings.TrimSpace(req.Location),
		TotalSlots:  req.TotalSlots,
		FeePerHour:  req.FeePerHour,
	}

	created, err := s.parkingRepo.Create(ctx, lot)
	if err != nil {
		if errors.Is(err, parkingRepo.ErrDuplicateCode) {
			s.logger.Warn("Create: parking code %s already exists", lot.ParkingCode)
			return nil, ErrDuplicateCode
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: parking id=%d code=%s created", created.ID, created.ParkingCode)
	return models.FromDomainParking(created), nil
}

// Update обновляет параметры парковки (только администраторы).
// nil-поля запроса сохраняют текущее значение.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateParkingRequest) (*models.ParkingResponse, error) {
	lot, err := s.parkingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, parkingRepo.ErrParkingNotFound) {
			s.logger.Warn("Update: parking id=%d not found", id)
			return nil, ErrParkingNotFound
		}
		s.logger.Error("Update: repository error for parking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	applyUpdateRequest(lot, req)

	if err := validateLot(lot); err != nil {
		s.logger.Warn("Update: validation failed for parking id=%d: %v", id, err)
		return nil, err
	}

	if err := s.parkingRepo.Update(ctx, lot); err != nil {
		if errors.Is(err, parkingRepo.ErrDuplicateCode) {
			s.logger.Warn("Update: parking code %s already exists", lot.ParkingCode)
			return nil, ErrDuplicateCode
		}
		if errors.Is(err, parkingRepo.ErrParkingNotFound) {
			return nil, ErrParkingNotFound
		}
		s.logger.Error("Update: repository error for parking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: parking id=%d updated", id)
	return models.FromDomainParking(lot), nil
}

// GetWithOccupancy получает парковку вместе с текущей занятостью.
// Занята каждая активная запись без времени выезда; свободные места
// могут уходить в минус при перегрузе.
func (s *Service) GetWithOccupancy(ctx context.Context, id int64) (*models.ParkingStatusResponse, error) {
	lot, err := s.parkingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, parkingRepo.ErrParkingNotFound) {
			s.logger.Warn("GetWithOccupancy: parking id=%d not found", id)
			return nil, ErrParkingNotFound
		}
		s.logger.Error("GetWithOccupancy: repository error for parking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetWithOccupancy - repository error: %v", ErrInternal, err)
	}

	occupied, err := s.bookingRepo.CountParkedByParkingID(ctx, id)
	if err != nil {
		s.logger.Error("GetWithOccupancy: count error for parking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetWithOccupancy - count error: %v", ErrInternal, err)
	}

	occ := domain.NewOccupancy(lot.TotalSlots, occupied)
	if occ.IsOverbooked() {
		s.logger.Warn("GetWithOccupancy: parking id=%d overbooked: %d occupied of %d", id, occ.OccupiedSlots, lot.TotalSlots)
	}

	return models.FromDomainParkingWithOccupancy(lot, occ), nil
}

// List получает все парковки
func (s *Service) List(ctx context.Context) (*models.ParkingListResponse, error) {
	lots, err := s.parkingRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d parkings", len(lots))
	return models.FromDomainParkingList(lots), nil
}

func validateCreateRequest(req *models.CreateParkingRequest) error {
	if strings.TrimSpace(req.ParkingCode) == "" {
		return fmt.Errorf("%w: parkingCode is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ParkingName) == "" {
		return fmt.Errorf("%w: parkingName is required", ErrInvalidInput)
	}
	if req.TotalSlots < 0 {
		return fmt.Errorf("%w: totalSlots must be non-negative", ErrInvalidInput)
	}
	if req.FeePerHour < 0 {
		return fmt.Errorf("%w: feePerHour must be non-negative", ErrInvalidInput)
	}
	return nil
}

func validateLot(lot *domain.ParkingLot) error {
	if lot.ParkingCode == "" {
		return fmt.Errorf("%w: parkingCode is required", ErrInvalidInput)
	}
	if lot.ParkingName == "" {
		return fmt.Errorf("%w: parkingName is required", ErrInvalidInput)
	}
	if lot.TotalSlots < 0 {
		return fmt.Errorf("%w: totalSlots must be non-negative", ErrInvalidInput)
	}
	if lot.FeePerHour < 0 {
		return fmt.Errorf("%w: feePerHour must be non-negative", ErrInvalidInput)
	}
	return nil
}

func applyUpdateRequest(lot *domain.ParkingLot, req *models.UpdateParkingRequest) {
	if req.ParkingCode != nil {
		lot.ParkingCode = strings.TrimSpace(*req.ParkingCode)
	}
	if req.ParkingName != nil {
		lot.ParkingName = strings.TrimSpace(*req.ParkingName)
	}
	if req.Location != nil {
		lot.Location = strings.TrimSpace(*req.Location)
	}
	if req.TotalSlots != nil {
		lot.TotalSlots = *req.TotalSlots
	}
	if req.FeePerHour != nil {
		lot.FeePerHour = *req.FeePerHour
	}
}
