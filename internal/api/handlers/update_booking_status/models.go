package update_booking_status

import (
	"github.com/m04kA/SBP-SchedulingService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status        string  `json:"status"`
	TransactionID *string `json:"transactionId,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в сервисную модель
func (r *UpdateStatusRequest) ToServiceRequest(callerID string) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		CallerID:      callerID,
		Status:        r.Status,
		TransactionID: r.TransactionID,
	}
}
