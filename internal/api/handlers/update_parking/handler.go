package update_parking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/parking"
	"github.com/m04kA/SMC-ParkingService/internal/service/parking/models"
)

const (
	msgInvalidParkingID   = "некорректный ID парковки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные парковки"
	msgNotFound           = "парковка не найдена"
	msgDuplicateCode      = "парковка с таким кодом уже существует"
)

type Handler struct {
	service ParkingService
	logger  Logger
}

func NewHandler(service ParkingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/parkings/{parkingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем parkingId из URL
	vars := mux.Vars(r)
	parkingIDStr := vars["parkingId"]

	parkingID, err := strconv.ParseInt(parkingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /parkings/{id} - Invalid parking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParkingID)
		return
	}

	// Декодируем body
	var req models.UpdateParkingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /parkings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Update(r.Context(), parkingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, parking.ErrParkingNotFound):
			h.logger.Warn("PUT /parkings/{id} - Parking not found: parking_id=%d", parkingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, parking.ErrInvalidInput):
			h.logger.Warn("PUT /parkings/{id} - Invalid input: parking_id=%d, error=%v", parkingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, parking.ErrDuplicateCode):
			h.logger.Warn("PUT /parkings/{id} - Duplicate code: parking_id=%d", parkingID)
			handlers.RespondConflict(w, msgDuplicateCode)

		default:
			h.logger.Error("PUT /parkings/{id} - Failed to update parking: parking_id=%d, error=%v",
				parkingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /parkings/{id} - Parking updated: parking_id=%d", parkingID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
