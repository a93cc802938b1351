package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateCharge(t *testing.T) {
	base := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		entry      time.Time
		exit       time.Time
		feePerHour float64
		wantHours  int
		wantAmount float64
	}{
		{
			name:       "one minute charged as full hour",
			entry:      base,
			exit:       base.Add(1 * time.Minute),
			feePerHour: 500,
			wantHours:  1,
			wantAmount: 500,
		},
		{
			name:       "exactly three hours",
			entry:      base,
			exit:       base.Add(3 * time.Hour),
			feePerHour: 500,
			wantHours:  3,
			wantAmount: 1500,
		},
		{
			name:       "two hours and one second rounds up",
			entry:      base,
			exit:       base.Add(2*time.Hour + time.Second),
			feePerHour: 100,
			wantHours:  3,
			wantAmount: 300,
		},
		{
			name:       "59 minutes charged as one hour",
			entry:      base,
			exit:       base.Add(59 * time.Minute),
			feePerHour: 120.5,
			wantHours:  1,
			wantAmount: 120.5,
		},
		{
			name:       "zero fee gives zero amount",
			entry:      base,
			exit:       base.Add(5 * time.Hour),
			feePerHour: 0,
			wantHours:  5,
			wantAmount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, amount, err := CalculateCharge(tt.entry, tt.exit, tt.feePerHour)
			require.NoError(t, err)
			assert.Equal(t, tt.wantHours, hours)
			assert.Equal(t, tt.wantAmount, amount)
		})
	}
}

func TestCalculateCharge_InvalidDuration(t *testing.T) {
	base := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("exit equals entry", func(t *testing.T) {
		_, _, err := CalculateCharge(base, base, 500)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("exit before entry", func(t *testing.T) {
		_, _, err := CalculateCharge(base, base.Add(-time.Hour), 500)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})
}
