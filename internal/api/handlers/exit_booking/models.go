package exit_booking

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/usecase/exit_booking"
)

// ExitBookingResponse HTTP response model
type ExitBookingResponse struct {
	ID            int64   `json:"id"`
	PlateNumber   string  `json:"plateNumber"`
	ParkingID     *int64  `json:"parkingId,omitempty"`
	EntryTime     string  `json:"entryTime"`
	ExitTime      string  `json:"exitTime"`
	Status        string  `json:"status"`
	DurationHours int     `json:"durationHours"`
	AmountCharged float64 `json:"amountCharged"`
	ReceiptNumber string  `json:"receiptNumber"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *exit_booking.Response) *ExitBookingResponse {
	return &ExitBookingResponse{
		ID:            resp.ID,
		PlateNumber:   resp.PlateNumber,
		ParkingID:     resp.ParkingID,
		EntryTime:     resp.EntryTime.Format(time.RFC3339),
		ExitTime:      resp.ExitTime.Format(time.RFC3339),
		Status:        resp.Status,
		DurationHours: resp.DurationHours,
		AmountCharged: resp.AmountCharged,
		ReceiptNumber: resp.ReceiptNumber,
	}
}
