package parking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
	"github.com/m04kA/SMC-ParkingService/internal/service/parking/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

type fakeParkingRepo struct {
	lot       *domain.ParkingLot
	lots      []*domain.ParkingLot
	createErr error
	getErr    error
	updateErr error
	updated   *domain.ParkingLot
}

func (f *fakeParkingRepo) Create(_ context.Context, lot *domain.ParkingLot) (*domain.ParkingLot, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	lot.ID = 1
	return lot, nil
}

func (f *fakeParkingRepo) GetByID(_ context.Context, _ int64) (*domain.ParkingLot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.lot, nil
}

func (f *fakeParkingRepo) List(_ context.Context) ([]*domain.ParkingLot, error) {
	return f.lots, nil
}

func (f *fakeParkingRepo) Update(_ context.Context, lot *domain.ParkingLot) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = lot
	return nil
}

type fakeBookingRepo struct {
	parked int
	err    error
}

func (f *fakeBookingRepo) CountParkedByParkingID(_ context.Context, _ int64) (int, error) {
	return f.parked, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestCreate(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := NewService(&fakeParkingRepo{}, &fakeBookingRepo{}, nopLogger{})

		resp, err := svc.Create(context.Background(), &models.CreateParkingRequest{
			ParkingCode: "PK-001",
			ParkingName: "Central",
			TotalSlots:  50,
			FeePerHour:  500,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "PK-001", resp.ParkingCode)
	})

	t.Run("missing code", func(t *testing.T) {
		svc := NewService(&fakeParkingRepo{}, &fakeBookingRepo{}, nopLogger{})

		_, err := svc.Create(context.Background(), &models.CreateParkingRequest{
			ParkingName: "Central",
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative slots", func(t *testing.T) {
		svc := NewService(&fakeParkingRepo{}, &fakeBookingRepo{}, nopLogger{})

		_, err := svc.Create(context.Background(), &models.CreateParkingRequest{
			ParkingCode: "PK-001",
			ParkingName: "Central",
			TotalSlots:  -1,
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative fee", func(t *testing.T) {
		svc := NewService(&fakeParkingRepo{}, &fakeBookingRepo{}, nopLogger{})

		_, err := svc.Create(context.Background(), &models.CreateParkingRequest{
			ParkingCode: "PK-001",
			ParkingName: "Central",
			FeePerHour:  -5,
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duplicate code", func(t *testing.T) {
		repo := &fakeParkingRepo{createErr: parkingRepo.ErrDuplicateCode}
		svc := NewService(repo, &fakeBookingRepo{}, nopLogger{})

		_, err := svc.Create(context.Background(), &models.CreateParkingRequest{
			ParkingCode: "PK-001",
			ParkingName: "Central",
		})

		assert.ErrorIs(t, err, ErrDuplicateCode)
	})
}

func TestUpdate(t *testing.T) {
	existing := func() *domain.ParkingLot {
		return &domain.ParkingLot{
			ID:          1,
			ParkingCode: "PK-001",
			ParkingName: "Central",
			TotalSlots:  50,
			FeePerHour:  500,
		}
	}

	t.Run("partial update keeps other fields", func(t *testing.T) {
		repo := &fakeParkingRepo{lot: existing()}
		svc := NewService(repo, &fakeBookingRepo{}, nopLogger{})

		resp, err := svc.Update(context.Background(), 1, &models.UpdateParkingRequest{
			FeePerHour: ptr.Ptr(750.0),
		})

		require.NoError(t, err)
		assert.Equal(t, 750.0, resp.FeePerHour)
		assert.Equal(t, "PK-001", resp.ParkingCode)
		assert.Equal(t, 50, resp.TotalSlots)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeParkingRepo{getErr: parkingRepo.ErrParkingNotFound}
		svc := NewService(repo, &fakeBookingRepo{}, nopLogger{})

		_, err := svc.Update(context.Background(), 1, &models.UpdateParkingRequest{})
		assert.ErrorIs(t, err, ErrParkingNotFound)
	})

	t.Run("negative slots rejected", func(t *testing.T) {
		repo := &fakeParkingRepo{lot: existing()}
		svc := NewService(repo, &fakeBookingRepo{}, nopLogger{})

		_, err := svc.Update(context.Background(), 1, &models.UpdateParkingRequest{
			TotalSlots: ptr.Ptr(-10),
		})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetWithOccupancy(t *testing.T) {
	lot := &domain.ParkingLot{ID: 1, ParkingCode: "PK-001", ParkingName: "Central", TotalSlots: 10}

	t.Run("three of ten occupied", func(t *testing.T) {
		svc := NewService(&fakeParkingRepo{lot: lot}, &fakeBookingRepo{parked: 3}, nopLogger{})

		resp, err := svc.GetWithOccupancy(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, 3, resp.SlotsOccupied)
		assert.Equal(t, 7, resp.SlotsLeft)
	})

	t.Run("overbooked lot reports negative free slots", func(t *testing.T) {
		svc := NewService(&fakeParkingRepo{lot: lot}, &fakeBookingRepo{parked: 12}, nopLogger{})

		resp, err := svc.GetWithOccupancy(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, -2, resp.SlotsLeft)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(&fakeParkingRepo{getErr: parkingRepo.ErrParkingNotFound}, &fakeBookingRepo{}, nopLogger{})

		_, err := svc.GetWithOccupancy(context.Background(), 1)
		assert.ErrorIs(t, err, ErrParkingNotFound)
	})
}
