package get_parking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/parking"
)

const (
	msgInvalidParkingID = "некорректный ID парковки"
	msgNotFound         = "парковка не найдена"
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

// Handle GET /api/v1/parkings/{parkingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем parkingId из URL
	vars := mux.Vars(r)
	parkingIDStr := vars["parkingId"]

	parkingID, err := strconv.ParseInt(parkingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /parkings/{id} - Invalid parking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParkingID)
		return
	}

	resp, err := h.service.GetWithOccupancy(r.Context(), parkingID)
	if err != nil {
		switch {
		case errors.Is(err, parking.ErrParkingNotFound):
			h.logger.Warn("GET /parkings/{id} - Parking not found: parking_id=%d", parkingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /parkings/{id} - Failed to get parking status: parking_id=%d, error=%v",
				parkingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
