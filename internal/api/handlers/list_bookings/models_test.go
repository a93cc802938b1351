package list_bookings

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	t.Run("empty query gives empty filter", func(t *testing.T) {
		req, err := ParseQuery(url.Values{})
		require.NoError(t, err)
		assert.Nil(t, req.FromDate)
		assert.Nil(t, req.ToDate)
		assert.Nil(t, req.Plate)
		assert.Nil(t, req.Status)
		assert.Nil(t, req.ParkingID)
	})

	t.Run("full filter", func(t *testing.T) {
		query := url.Values{}
		query.Set("from", "2025-03-01")
		query.Set("to", "2025-03-10")
		query.Set("plate", "BC77")
		query.Set("status", "active")
		query.Set("parkingId", "2")

		req, err := ParseQuery(query)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *req.FromDate)
		// Конец периода захватывает весь день 10 марта
		assert.True(t, req.ToDate.After(time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)))
		assert.Equal(t, "BC77", *req.Plate)
		assert.Equal(t, "active", *req.Status)
		assert.Equal(t, int64(2), *req.ParkingID)
	})

	t.Run("bad date", func(t *testing.T) {
		query := url.Values{}
		query.Set("from", "03/01/2025")

		_, err := ParseQuery(query)
		assert.Error(t, err)
	})

	t.Run("bad parking id", func(t *testing.T) {
		query := url.Values{}
		query.Set("parkingId", "abc")

		_, err := ParseQuery(query)
		assert.Error(t, err)
	})
}
