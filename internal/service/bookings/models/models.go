package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на выборку бронирований с фильтрацией
type ListBookingsRequest struct {
	FromDate  *time.Time `json:"fromDate,omitempty"`  // Начало периода по времени въезда
	ToDate    *time.Time `json:"toDate,omitempty"`    // Конец периода по времени въезда
	Plate     *string    `json:"plate,omitempty"`     // Подстрока номера, без учета регистра
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу
	ParkingID *int64     `json:"parkingId,omitempty"` // Фильтр по парковке
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		FromDate:  r.FromDate,
		ToDate:    r.ToDate,
		Plate:     r.Plate,
		ParkingID: r.ParkingID,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// DecisionRequest решение администратора по pending-бронированию
type DecisionRequest struct {
	Decision string `json:"decision"` // "accepted" или "rejected"
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64   `json:"id"`
	FullName    string  `json:"fullName"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	PlateNumber string  `json:"plateNumber"`
	UserID      *int64  `json:"userId,omitempty"`
	ParkingID   *int64  `json:"parkingId,omitempty"`
	EntryTime   string  `json:"entryTime"`          // ISO 8601
	ExitTime    *string `json:"exitTime,omitempty"` // ISO 8601, nil = на парковке
	Status      string  `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// OutgoingResponse выехавшие автомобили за период + общая сумма начислений
type OutgoingResponse struct {
	Bookings    []BookingResponse `json:"bookings"`
	TotalAmount float64           `json:"totalAmount"`
}

// CompletedSummaryResponse сводка по завершенным бронированиям за период
type CompletedSummaryResponse struct {
	TotalBookings int               `json:"totalBookings"`
	TotalAmount   float64           `json:"totalAmount"`
	Bookings      []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:          b.ID,
		FullName:    b.FullName,
		Email:       b.Email,
		Phone:       b.Phone,
		PlateNumber: b.PlateNumber,
		UserID:      b.UserID,
		ParkingID:   b.ParkingID,
		EntryTime:   b.EntryTime.Format(time.RFC3339),
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
	}

	if b.ExitTime != nil {
		exitStr := b.ExitTime.Format(time.RFC3339)
		resp.ExitTime = &exitStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
