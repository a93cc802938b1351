package update_booking_status

import (
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Decision string `json:"decision"` // "accepted" или "rejected"
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest() *models.DecisionRequest {
	return &models.DecisionRequest{
		Decision: r.Decision,
	}
}
