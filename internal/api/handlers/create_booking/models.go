package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	PlateNumber string `json:"plateNumber"`
	UserID      *int64 `json:"userId,omitempty"`
	ParkingID   *int64 `json:"parkingId,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	PlateNumber string    `json:"plateNumber"`
	UserID      *int64    `json:"userId,omitempty"`
	ParkingID   *int64    `json:"parkingId,omitempty"`
	EntryTime   string    `json:"entryTime"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP request в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *create_booking.Request {
	return &create_booking.Request{
		FullName:    r.FullName,
		Email:       r.Email,
		Phone:       r.Phone,
		PlateNumber: r.PlateNumber,
		UserID:      r.UserID,
		ParkingID:   r.ParkingID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *create_booking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		ID:          resp.ID,
		FullName:    resp.FullName,
		Email:       resp.Email,
		Phone:       resp.Phone,
		PlateNumber: resp.PlateNumber,
		UserID:      resp.UserID,
		ParkingID:   resp.ParkingID,
		EntryTime:   resp.EntryTime.Format(time.RFC3339),
		Status:      resp.Status,
		CreatedAt:   resp.CreatedAt,
	}
}
