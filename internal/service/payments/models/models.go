package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID            int64     `json:"id"`
	BookingID     int64     `json:"bookingId"`
	Amount        float64   `json:"amount"`
	ReceiptNumber string    `json:"receiptNumber"`
	CreatedAt     time.Time `json:"createdAt"`
}

// BillResponse счет за стоянку по завершенному бронированию.
// ReceiptNumber пустой, если платеж отсутствует и сумма пересчитана
// по сохраненному интервалу.
type BillResponse struct {
	BookingID     int64   `json:"bookingId"`
	FullName      string  `json:"fullName"`
	PlateNumber   string  `json:"plateNumber"`
	ParkingName   string  `json:"parkingName,omitempty"`
	EntryTime     string  `json:"entryTime"`
	ExitTime      string  `json:"exitTime"`
	DurationHours int     `json:"durationHours"`
	FeePerHour    float64 `json:"feePerHour"`
	Amount        float64 `json:"amount"`
	ReceiptNumber string  `json:"receiptNumber,omitempty"`
}

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(payment *domain.Payment) *PaymentResponse {
	if payment == nil {
		return nil
	}

	return &PaymentResponse{
		ID:            payment.ID,
		BookingID:     payment.BookingID,
		Amount:        payment.Amount,
		ReceiptNumber: payment.ReceiptNumber,
		CreatedAt:     payment.CreatedAt,
	}
}
