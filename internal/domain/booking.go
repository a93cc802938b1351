package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	// Физический поток: въезд/выезд с расчетом оплаты
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"

	// Поток подтверждения: предварительная бронь, решение администратора
	StatusPending  BookingStatus = "pending"
	StatusAccepted BookingStatus = "accepted"
	StatusRejected BookingStatus = "rejected"
)

// allowedTransitions явная таблица переходов статусов.
// Два потока не пересекаются: active-бронирование нельзя перевести в accepted,
// pending-бронирование нельзя завершить выездом.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusActive:  {StatusCompleted, StatusCancelled},
	StatusPending: {StatusAccepted, StatusRejected},
}

// CanTransitionTo returns true if the transition from s to next is allowed
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid returns true if the status is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled,
		StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// IsDecision returns true if the status is an administrator decision
// for the approval flow (accepted or rejected)
func (s BookingStatus) IsDecision() bool {
	return s == StatusAccepted || s == StatusRejected
}

// IsTerminal returns true if no further transition is allowed from s
func (s BookingStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// Booking represents a single vehicle's parking record
type Booking struct {
	ID          int64
	FullName    string
	Email       string
	Phone       string
	PlateNumber string

	UserID    *int64 // Владелец брони (nil для публичных бронирований)
	ParkingID *int64 // Парковка (nil для потоков без физической парковки)

	EntryTime time.Time
	ExitTime  *time.Time // nil = автомобиль еще на парковке
	Status    BookingStatus

	CreatedAt time.Time
}

// IsParked returns true if the vehicle is currently on the lot
func (b *Booking) IsParked() bool {
	return b.ExitTime == nil && b.Status == StatusActive
}

// HasExited returns true if the exit time has been recorded
func (b *Booking) HasExited() bool {
	return b.ExitTime != nil
}

// CanExit returns true if the booking can go through the exit transition
func (b *Booking) CanExit() bool {
	return b.ExitTime == nil && b.Status.CanTransitionTo(StatusCompleted)
}

// BelongsTo returns true if the booking is owned by the given user
func (b *Booking) BelongsTo(userID int64) bool {
	return b.UserID != nil && *b.UserID == userID
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	FromDate  *time.Time     // Начало периода по entry_time (опционально)
	ToDate    *time.Time     // Конец периода по entry_time (опционально)
	Plate     *string        // Подстрока номера, без учета регистра (опционально)
	Status    *BookingStatus // Фильтр по статусу (опционально)
	UserID    *int64         // Фильтр по владельцу (опционально)
	ParkingID *int64         // Фильтр по парковке (опционально)
}

// BookingWithPayment бронирование вместе с суммой платежа (если платеж уже создан).
// Используется отчетными запросами: отсутствующий платеж дает nil, а не ошибку.
type BookingWithPayment struct {
	Booking
	PaymentAmount *float64
}

// ChargedAmount возвращает сумму платежа, отсутствующий платеж считается нулем
func (b *BookingWithPayment) ChargedAmount() float64 {
	if b.PaymentAmount == nil {
		return 0
	}
	return *b.PaymentAmount
}
