package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Request модели

// CreateParkingRequest запрос на создание парковки
type CreateParkingRequest struct {
	ParkingCode string  `json:"parkingCode"`
	ParkingName string  `json:"parkingName"`
	Location    string  `json:"location"`
	TotalSlots  int     `json:"totalSlots"`
	FeePerHour  float64 `json:"feePerHour"`
}

// UpdateParkingRequest запрос на обновление парковки.
// nil-поля не изменяются.
type UpdateParkingRequest struct {
	ParkingCode *string  `json:"parkingCode,omitempty"`
	ParkingName *string  `json:"parkingName,omitempty"`
	Location    *string  `json:"location,omitempty"`
	TotalSlots  *int     `json:"totalSlots,omitempty"`
	FeePerHour  *float64 `json:"feePerHour,omitempty"`
}

// Response модели

// ParkingResponse ответ с данными парковки
type ParkingResponse struct {
	ID          int64   `json:"id"`
	ParkingCode string  `json:"parkingCode"`
	ParkingName string  `json:"parkingName"`
	Location    string  `json:"location"`
	TotalSlots  int     `json:"totalSlots"`
	FeePerHour  float64 `json:"feePerHour"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ParkingStatusResponse парковка вместе с отчетом о занятости.
// SlotsLeft может быть отрицательным при перегрузе - значение не обрезается.
type ParkingStatusResponse struct {
	ParkingResponse
	SlotsOccupied int `json:"slotsOccupied"`
	SlotsLeft     int `json:"slotsLeft"`
}

// ParkingListResponse ответ со списком парковок
type ParkingListResponse struct {
	Parkings []ParkingResponse `json:"parkings"`
}

// Методы конвертации

// FromDomainParking конвертирует domain модель в DTO
func FromDomainParking(lot *domain.ParkingLot) *ParkingResponse {
	if lot == nil {
		return nil
	}

	return &ParkingResponse{
		ID:          lot.ID,
		ParkingCode: lot.ParkingCode,
		ParkingName: lot.ParkingName,
		Location:    lot.Location,
		TotalSlots:  lot.TotalSlots,
		FeePerHour:  lot.FeePerHour,
		CreatedAt:   lot.CreatedAt,
		UpdatedAt:   lot.UpdatedAt,
	}
}

// FromDomainParkingWithOccupancy конвертирует парковку с занятостью в DTO
func FromDomainParkingWithOccupancy(lot *domain.ParkingLot, occ domain.Occupancy) *ParkingStatusResponse {
	return &ParkingStatusResponse{
		ParkingResponse: *FromDomainParking(lot),
		SlotsOccupied:   occ.OccupiedSlots,
		SlotsLeft:       occ.FreeSlots,
	}
}

// FromDomainParkingList конвертирует список domain моделей в DTO
func FromDomainParkingList(lots []*domain.ParkingLot) *ParkingListResponse {
	resp := &ParkingListResponse{
		Parkings: make([]ParkingResponse, len(lots)),
	}

	for i, lot := range lots {
		resp.Parkings[i] = *FromDomainParking(lot)
	}

	return resp
}
