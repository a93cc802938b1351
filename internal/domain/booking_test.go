package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		// Физический поток
		{StatusActive, StatusCompleted, true},
		{StatusActive, StatusCancelled, true},
		{StatusActive, StatusAccepted, false},
		{StatusActive, StatusRejected, false},
		{StatusActive, StatusPending, false},

		// Поток подтверждения
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusCancelled, false},

		// Терминальные статусы никуда не переходят
		{StatusCompleted, StatusActive, false},
		{StatusCancelled, StatusActive, false},
		{StatusAccepted, StatusCompleted, false},
		{StatusRejected, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusActive.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusAccepted.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
}

func TestBookingStatus_IsDecision(t *testing.T) {
	assert.True(t, StatusAccepted.IsDecision())
	assert.True(t, StatusRejected.IsDecision())
	assert.False(t, StatusActive.IsDecision())
	assert.False(t, StatusPending.IsDecision())
	assert.False(t, StatusCompleted.IsDecision())
}

func TestBooking_CanExit(t *testing.T) {
	now := time.Now()

	t.Run("active and parked", func(t *testing.T) {
		b := &Booking{Status: StatusActive, EntryTime: now}
		assert.True(t, b.CanExit())
	})

	t.Run("already exited", func(t *testing.T) {
		exit := now.Add(time.Hour)
		b := &Booking{Status: StatusCompleted, EntryTime: now, ExitTime: &exit}
		assert.False(t, b.CanExit())
	})

	t.Run("pending cannot exit", func(t *testing.T) {
		b := &Booking{Status: StatusPending, EntryTime: now}
		assert.False(t, b.CanExit())
	})

	t.Run("cancelled cannot exit", func(t *testing.T) {
		b := &Booking{Status: StatusCancelled, EntryTime: now}
		assert.False(t, b.CanExit())
	})
}

func TestBooking_BelongsTo(t *testing.T) {
	userID := int64(42)

	owned := &Booking{UserID: &userID}
	assert.True(t, owned.BelongsTo(42))
	assert.False(t, owned.BelongsTo(7))

	public := &Booking{UserID: nil}
	assert.False(t, public.BelongsTo(42))
}

func TestBookingWithPayment_ChargedAmount(t *testing.T) {
	amount := 1500.0

	withPayment := &BookingWithPayment{PaymentAmount: &amount}
	assert.Equal(t, 1500.0, withPayment.ChargedAmount())

	// Отсутствующий платеж считается нулем, а не ошибкой
	withoutPayment := &BookingWithPayment{}
	assert.Equal(t, 0.0, withoutPayment.ChargedAmount())
}
