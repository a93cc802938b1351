package get_incoming_cars

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/incoming
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetIncoming(r.Context())
	if err != nil {
		h.logger.Error("GET /bookings/incoming - Failed to get incoming cars: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
