package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

type fakeRepo struct {
	booking       *domain.Booking
	bookings      []*domain.Booking
	withPayments  []*domain.BookingWithPayment
	getErr        error
	listErr       error
	updateErr     error
	deleteErr     error
	updatedStatus domain.BookingStatus
	deletedID     int64
	lastFilter    domain.BookingsFilter
}

func (f *fakeRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.lastFilter = filter
	return f.bookings, nil
}

func (f *fakeRepo) ListParked(_ context.Context) ([]*domain.Booking, error) {
	return f.bookings, f.listErr
}

func (f *fakeRepo) ListExitedWithPayments(_ context.Context, _, _ time.Time) ([]*domain.BookingWithPayment, error) {
	return f.withPayments, f.listErr
}

func (f *fakeRepo) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedStatus = status
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	entry = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	admin = domain.Principal{UserID: 1, Role: domain.RoleAdmin}
	user  = domain.Principal{UserID: 42, Role: domain.RoleUser}
)

func completedBooking(id int64, amount *float64) *domain.BookingWithPayment {
	exit := entry.Add(2 * time.Hour)
	return &domain.BookingWithPayment{
		Booking: domain.Booking{
			ID:          id,
			PlateNumber: "A123BC77",
			EntryTime:   entry,
			ExitTime:    &exit,
			Status:      domain.StatusCompleted,
		},
		PaymentAmount: amount,
	}
}

func TestGetByID_OwnerAndAdminAccess(t *testing.T) {
	repo := &fakeRepo{booking: &domain.Booking{ID: 5, UserID: ptr.Ptr(int64(42)), EntryTime: entry, Status: domain.StatusActive}}
	svc := NewService(repo, nopLogger{})

	t.Run("owner sees own booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 5, user)
		require.NoError(t, err)
		assert.Equal(t, int64(5), resp.ID)
	})

	t.Run("admin sees any booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 5, admin)
		assert.NoError(t, err)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 5, domain.Principal{UserID: 99, Role: domain.RoleUser})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeRepo{getErr: bookingRepo.ErrBookingNotFound}
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetByID(context.Background(), 5, admin)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_AccessControl(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, nopLogger{})

	t.Run("user reads own history", func(t *testing.T) {
		_, err := svc.GetUserBookings(context.Background(), 42, user)
		require.NoError(t, err)
		require.NotNil(t, repo.lastFilter.UserID)
		assert.Equal(t, int64(42), *repo.lastFilter.UserID)
	})

	t.Run("user cannot read another history", func(t *testing.T) {
		_, err := svc.GetUserBookings(context.Background(), 7, user)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestList_InvalidStatusFilter(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{
		Status: ptr.Ptr("parked"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetOutgoing_SumsChargesWithMissingPayment(t *testing.T) {
	repo := &fakeRepo{withPayments: []*domain.BookingWithPayment{
		completedBooking(1, ptr.Ptr(1500.0)),
		completedBooking(2, nil), // платеж потерян - участвует с нулем
		completedBooking(3, ptr.Ptr(500.0)),
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetOutgoing(context.Background(), entry, entry.Add(24*time.Hour))

	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 3)
	assert.Equal(t, 2000.0, resp.TotalAmount)
}

func TestGetOutgoing_InvalidRange(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	_, err := svc.GetOutgoing(context.Background(), entry, entry)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCompletedSummary(t *testing.T) {
	cancelled := completedBooking(4, ptr.Ptr(999.0))
	cancelled.Status = domain.StatusCancelled

	repo := &fakeRepo{withPayments: []*domain.BookingWithPayment{
		completedBooking(1, ptr.Ptr(1500.0)),
		completedBooking(2, nil),
		cancelled, // не completed - в сводку не входит
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetCompletedSummary(context.Background(), entry, entry.Add(24*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalBookings)
	assert.Equal(t, 1500.0, resp.TotalAmount)
}

func TestDecide(t *testing.T) {
	t.Run("accepts pending booking", func(t *testing.T) {
		repo := &fakeRepo{booking: &domain.Booking{ID: 5, EntryTime: entry, Status: domain.StatusPending}}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.Decide(context.Background(), 5, &models.DecisionRequest{Decision: "accepted"})

		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusAccepted), resp.Status)
		assert.Equal(t, domain.StatusAccepted, repo.updatedStatus)
	})

	t.Run("rejects pending booking", func(t *testing.T) {
		repo := &fakeRepo{booking: &domain.Booking{ID: 5, EntryTime: entry, Status: domain.StatusPending}}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.Decide(context.Background(), 5, &models.DecisionRequest{Decision: "rejected"})

		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusRejected), resp.Status)
	})

	t.Run("completed is not a decision", func(t *testing.T) {
		repo := &fakeRepo{booking: &domain.Booking{ID: 5, EntryTime: entry, Status: domain.StatusPending}}
		svc := NewService(repo, nopLogger{})

		_, err := svc.Decide(context.Background(), 5, &models.DecisionRequest{Decision: "completed"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("active booking cannot be accepted", func(t *testing.T) {
		repo := &fakeRepo{booking: &domain.Booking{ID: 5, EntryTime: entry, Status: domain.StatusActive}}
		svc := NewService(repo, nopLogger{})

		_, err := svc.Decide(context.Background(), 5, &models.DecisionRequest{Decision: "accepted"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestCancel(t *testing.T) {
	t.Run("cancels active booking", func(t *testing.T) {
		repo := &fakeRepo{booking: &domain.Booking{ID: 5, EntryTime: entry, Status: domain.StatusActive}}
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, repo.updatedStatus)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		repo := &fakeRepo{booking: &domain.Booking{ID: 5, EntryTime: entry, Status: domain.StatusCompleted}}
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 5)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestDelete(t *testing.T) {
	t.Run("deletes booking", func(t *testing.T) {
		repo := &fakeRepo{}
		svc := NewService(repo, nopLogger{})

		err := svc.Delete(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, int64(5), repo.deletedID)
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeRepo{deleteErr: bookingRepo.ErrBookingNotFound}
		svc := NewService(repo, nopLogger{})

		err := svc.Delete(context.Background(), 5)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}
