package completed_summary

import (
	"fmt"
	"net/url"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ParseRange разбирает обязательные параметры from/to (YYYY-MM-DD).
// Конец периода включает весь день.
func ParseRange(query url.Values) (from, to time.Time, err error) {
	fromStr := query.Get("from")
	toStr := query.Get("to")

	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("'from' and 'to' are required")
	}

	from, err = time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid 'from' date: %v", err)
	}

	to, err = time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid 'to' date: %v", err)
	}
	to = to.Add(24*time.Hour - time.Nanosecond)

	return from, to, nil
}
