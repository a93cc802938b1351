package domain

import "time"

// Payment represents the charge computed once at exit time.
// Exactly one payment may exist per booking; it is never mutated afterwards.
type Payment struct {
	ID            int64
	BookingID     int64
	Amount        float64
	ReceiptNumber string // Уникальный номер квитанции (uuid)
	CreatedAt     time.Time
}
