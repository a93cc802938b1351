package create_parking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/service/parking"
	"github.com/m04kA/SMC-ParkingService/internal/service/parking/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные парковки"
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

// Handle POST /api/v1/parkings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Декодируем body
	var req models.CreateParkingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /parkings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, parking.ErrInvalidInput):
			h.logger.Warn("POST /parkings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, parking.ErrDuplicateCode):
			h.logger.Warn("POST /parkings - Duplicate code: code=%s", req.ParkingCode)
			handlers.RespondConflict(w, msgDuplicateCode)

		default:
			h.logger.Error("POST /parkings - Failed to create parking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /parkings - Parking created: parking_id=%d, code=%s", resp.ID, resp.ParkingCode)
	handlers.RespondJSON(w, http.StatusCreated, resp)
}
