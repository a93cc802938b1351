package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewOccupancy(t *testing.T) {
	t.Run("three of ten occupied", func(t *testing.T) {
		occ := NewOccupancy(10, 3)
		assert.Equal(t, 3, occ.OccupiedSlots)
		assert.Equal(t, 7, occ.FreeSlots)
		assert.False(t, occ.IsOverbooked())
	})

	t.Run("empty lot", func(t *testing.T) {
		occ := NewOccupancy(10, 0)
		assert.Equal(t, 10, occ.FreeSlots)
	})

	t.Run("full lot", func(t *testing.T) {
		occ := NewOccupancy(10, 10)
		assert.Equal(t, 0, occ.FreeSlots)
		assert.False(t, occ.IsOverbooked())
	})

	// Перегруз не обрезается до нуля - операторы должны его видеть
	t.Run("overbooked lot goes negative", func(t *testing.T) {
		occ := NewOccupancy(10, 12)
		assert.Equal(t, -2, occ.FreeSlots)
		assert.True(t, occ.IsOverbooked())
	})
}
