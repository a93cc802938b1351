package exit_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/usecase/exit_booking"
)

const (
	msgInvalidBookingID  = "некорректный ID бронирования"
	msgNotFound          = "бронирование не найдено"
	msgAlreadyExited     = "выезд по бронированию уже оформлен"
	msgInvalidStatus     = "статус бронирования не допускает выезд"
	msgNoParkingAssigned = "бронированию не назначена парковка"
	msgParkingNotFound   = "парковка бронирования не найдена"
	msgInvalidDuration   = "некорректная длительность стоянки"
)

type Handler struct {
	useCase ExitBookingUseCase
	logger  Logger
}

func NewHandler(useCase ExitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/exit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/exit - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Оформляем выезд: фиксация времени, расчет и создание платежа
	resp, err := h.useCase.Execute(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, exit_booking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/exit - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, exit_booking.ErrAlreadyExited):
			h.logger.Warn("PATCH /bookings/{id}/exit - Already exited: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyExited)

		case errors.Is(err, exit_booking.ErrInvalidStatus):
			h.logger.Warn("PATCH /bookings/{id}/exit - Invalid status: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, exit_booking.ErrNoParkingAssigned):
			h.logger.Warn("PATCH /bookings/{id}/exit - No parking assigned: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNoParkingAssigned)

		case errors.Is(err, exit_booking.ErrParkingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/exit - Parking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgParkingNotFound)

		case errors.Is(err, exit_booking.ErrInvalidDuration):
			h.logger.Warn("PATCH /bookings/{id}/exit - Invalid duration: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		default:
			h.logger.Error("PATCH /bookings/{id}/exit - Failed to exit booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/exit - Exit completed: booking_id=%d, amount=%.2f, receipt=%s",
		resp.ID, resp.AmountCharged, resp.ReceiptNumber)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
