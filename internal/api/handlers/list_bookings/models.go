package list_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

// ParseQuery разбирает query-параметры фильтра.
// Даты принимаются как YYYY-MM-DD; конец периода включает весь день.
func ParseQuery(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

	if v := query.Get("from"); v != "" {
		from, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, fmt.Errorf("invalid 'from' date: %v", err)
		}
		req.FromDate = &from
	}

	if v := query.Get("to"); v != "" {
		to, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, fmt.Errorf("invalid 'to' date: %v", err)
		}
		// Конец периода - до конца указанного дня
		to = to.Add(24*time.Hour - time.Nanosecond)
		req.ToDate = &to
	}

	if v := query.Get("plate"); v != "" {
		req.Plate = &v
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	if v := query.Get("parkingId"); v != "" {
		parkingID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid 'parkingId': %v", err)
		}
		req.ParkingID = &parkingID
	}

	return req, nil
}
