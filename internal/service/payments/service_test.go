package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/payment"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

type fakePaymentRepo struct {
	payment *domain.Payment
	err     error
}

func (f *fakePaymentRepo) GetByBookingID(_ context.Context, _ int64) (*domain.Payment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.payment, nil
}

type fakeBookingRepo struct {
	booking *domain.Booking
	err     error
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.booking, nil
}

type fakeParkingRepo struct {
	lot *domain.ParkingLot
	err error
}

func (f *fakeParkingRepo) GetByID(_ context.Context, _ int64) (*domain.ParkingLot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lot, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var entry = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func exitedBooking() *domain.Booking {
	exit := entry.Add(2*time.Hour + time.Minute)
	return &domain.Booking{
		ID:          7,
		FullName:    "Ivan Petrov",
		PlateNumber: "A123BC77",
		ParkingID:   ptr.Ptr(int64(2)),
		EntryTime:   entry,
		ExitTime:    &exit,
		Status:      domain.StatusCompleted,
	}
}

func TestGetByBookingID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &fakePaymentRepo{payment: &domain.Payment{
			ID: 1, BookingID: 7, Amount: 1500, ReceiptNumber: "receipt-uuid",
		}}
		svc := NewService(repo, &fakeBookingRepo{}, &fakeParkingRepo{}, nopLogger{})

		resp, err := svc.GetByBookingID(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, 1500.0, resp.Amount)
		assert.Equal(t, "receipt-uuid", resp.ReceiptNumber)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakePaymentRepo{err: paymentRepo.ErrPaymentNotFound}
		svc := NewService(repo, &fakeBookingRepo{}, &fakeParkingRepo{}, nopLogger{})

		_, err := svc.GetByBookingID(context.Background(), 7)
		assert.ErrorIs(t, err, ErrPaymentNotFound)
	})
}

func TestGenerateBill(t *testing.T) {
	lot := &domain.ParkingLot{ID: 2, ParkingName: "Central", FeePerHour: 500}

	t.Run("bill from stored payment", func(t *testing.T) {
		payments := &fakePaymentRepo{payment: &domain.Payment{
			ID: 1, BookingID: 7, Amount: 1500, ReceiptNumber: "receipt-uuid",
		}}
		svc := NewService(payments, &fakeBookingRepo{booking: exitedBooking()}, &fakeParkingRepo{lot: lot}, nopLogger{})

		bill, err := svc.GenerateBill(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, int64(7), bill.BookingID)
		assert.Equal(t, "Central", bill.ParkingName)
		assert.Equal(t, 3, bill.DurationHours)
		assert.Equal(t, 1500.0, bill.Amount)
		assert.Equal(t, "receipt-uuid", bill.ReceiptNumber)
	})

	t.Run("missing payment recomputed from interval", func(t *testing.T) {
		payments := &fakePaymentRepo{err: paymentRepo.ErrPaymentNotFound}
		svc := NewService(payments, &fakeBookingRepo{booking: exitedBooking()}, &fakeParkingRepo{lot: lot}, nopLogger{})

		bill, err := svc.GenerateBill(context.Background(), 7)

		require.NoError(t, err)
		assert.Equal(t, 1500.0, bill.Amount)
		assert.Empty(t, bill.ReceiptNumber)
	})

	t.Run("not exited yet", func(t *testing.T) {
		booking := exitedBooking()
		booking.ExitTime = nil
		booking.Status = domain.StatusActive

		svc := NewService(&fakePaymentRepo{}, &fakeBookingRepo{booking: booking}, &fakeParkingRepo{lot: lot}, nopLogger{})

		_, err := svc.GenerateBill(context.Background(), 7)
		assert.ErrorIs(t, err, ErrNotExited)
	})

	t.Run("booking not found", func(t *testing.T) {
		svc := NewService(&fakePaymentRepo{}, &fakeBookingRepo{err: bookingRepo.ErrBookingNotFound}, &fakeParkingRepo{}, nopLogger{})

		_, err := svc.GenerateBill(context.Background(), 7)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
