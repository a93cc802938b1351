package exit_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	parkingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/parking"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

type fakeBookingRepo struct {
	booking    *domain.Booking
	getErr     error
	markErr    error
	markedID   int64
	markedTime time.Time
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) MarkExited(_ context.Context, id int64, exitTime time.Time) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.markedID = id
	f.markedTime = exitTime
	return nil
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

type fakePaymentRepo struct {
	created *domain.Payment
	err     error
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if f.err != nil {
		return nil, f.err
	}
	payment.ID = 1
	payment.ReceiptNumber = "7b8de3c2-1111-4222-8333-444455556666"
	f.created = payment
	return payment, nil
}

// passthroughTxManager выполняет функцию без реальной транзакции
type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var entryTime = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func activeBooking() *domain.Booking {
	return &domain.Booking{
		ID:          7,
		PlateNumber: "A123BC77",
		ParkingID:   ptr.Ptr(int64(2)),
		EntryTime:   entryTime,
		Status:      domain.StatusActive,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, parkings *fakeParkingRepo, payments *fakePaymentRepo, tx *passthroughTxManager, now time.Time) *UseCase {
	uc := NewUseCase(bookings, parkings, payments, tx, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking()}
	parkings := &fakeParkingRepo{lot: &domain.ParkingLot{ID: 2, FeePerHour: 500}}
	payments := &fakePaymentRepo{}
	tx := &passthroughTxManager{}

	// 2ч01м стоянки округляются до 3 часов
	uc := newTestUseCase(bookings, parkings, payments, tx, entryTime.Add(2*time.Hour+time.Minute))

	resp, err := uc.Execute(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, int64(7), bookings.markedID)
	assert.Equal(t, 3, resp.DurationHours)
	assert.Equal(t, 1500.0, resp.AmountCharged)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.NotEmpty(t, resp.ReceiptNumber)
	require.NotNil(t, payments.created)
	assert.Equal(t, int64(7), payments.created.BookingID)
	assert.Equal(t, 1500.0, payments.created.Amount)
}

func TestExecute_BookingNotFound(t *testing.T) {
	bookings := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	uc := newTestUseCase(bookings, &fakeParkingRepo{}, &fakePaymentRepo{}, &passthroughTxManager{}, entryTime.Add(time.Hour))

	_, err := uc.Execute(context.Background(), 7)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_AlreadyExited(t *testing.T) {
	booking := activeBooking()
	booking.Status = domain.StatusCompleted
	booking.ExitTime = ptr.Ptr(entryTime.Add(time.Hour))

	payments := &fakePaymentRepo{}
	bookings := &fakeBookingRepo{booking: booking}
	uc := newTestUseCase(bookings, &fakeParkingRepo{}, payments, &passthroughTxManager{}, entryTime.Add(2*time.Hour))

	_, err := uc.Execute(context.Background(), 7)

	// Повторный выезд отклоняется и не создает второй платеж
	assert.ErrorIs(t, err, ErrAlreadyExited)
	assert.Nil(t, payments.created)
}

func TestExecute_ExitRaceLoser(t *testing.T) {
	bookings := &fakeBookingRepo{
		booking: activeBooking(),
		markErr: bookingRepo.ErrAlreadyExited,
	}
	parkings := &fakeParkingRepo{lot: &domain.ParkingLot{ID: 2, FeePerHour: 500}}
	payments := &fakePaymentRepo{}
	uc := newTestUseCase(bookings, parkings, payments, &passthroughTxManager{}, entryTime.Add(time.Hour))

	_, err := uc.Execute(context.Background(), 7)

	assert.ErrorIs(t, err, ErrAlreadyExited)
	assert.Nil(t, payments.created)
}

func TestExecute_PendingCannotExit(t *testing.T) {
	booking := activeBooking()
	booking.Status = domain.StatusPending

	bookings := &fakeBookingRepo{booking: booking}
	uc := newTestUseCase(bookings, &fakeParkingRepo{}, &fakePaymentRepo{}, &passthroughTxManager{}, entryTime.Add(time.Hour))

	_, err := uc.Execute(context.Background(), 7)

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestExecute_NoParkingAssigned(t *testing.T) {
	booking := activeBooking()
	booking.ParkingID = nil

	bookings := &fakeBookingRepo{booking: booking}
	uc := newTestUseCase(bookings, &fakeParkingRepo{}, &fakePaymentRepo{}, &passthroughTxManager{}, entryTime.Add(time.Hour))

	_, err := uc.Execute(context.Background(), 7)

	assert.ErrorIs(t, err, ErrNoParkingAssigned)
}

func TestExecute_ParkingNotFound(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking()}
	parkings := &fakeParkingRepo{err: parkingRepo.ErrParkingNotFound}
	uc := newTestUseCase(bookings, parkings, &fakePaymentRepo{}, &passthroughTxManager{}, entryTime.Add(time.Hour))

	_, err := uc.Execute(context.Background(), 7)

	assert.ErrorIs(t, err, ErrParkingNotFound)
}

func TestExecute_SuspiciousTimestamps(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking()}
	parkings := &fakeParkingRepo{lot: &domain.ParkingLot{ID: 2, FeePerHour: 500}}

	// Часы системы ушли назад: exit раньше entry
	uc := newTestUseCase(bookings, parkings, &fakePaymentRepo{}, &passthroughTxManager{}, entryTime.Add(-time.Minute))

	_, err := uc.Execute(context.Background(), 7)

	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestExecute_PaymentCreateError(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking()}
	parkings := &fakeParkingRepo{lot: &domain.ParkingLot{ID: 2, FeePerHour: 500}}
	payments := &fakePaymentRepo{err: errors.New("unique violation")}
	uc := newTestUseCase(bookings, parkings, payments, &passthroughTxManager{}, entryTime.Add(time.Hour))

	_, err := uc.Execute(context.Background(), 7)

	assert.ErrorIs(t, err, ErrInternal)
}
