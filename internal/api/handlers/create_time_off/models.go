package create_time_off

import (
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/service/timeoff/models"
)

// CreateTimeOffRequest HTTP запрос на создание отгула.
// Времена передаются в формате RFC 3339, staffId "all" блокирует весь бизнес.
type CreateTimeOffRequest struct {
	StaffID string    `json:"staffId"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Reason  *string   `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в сервисную модель
func (r *CreateTimeOffRequest) ToServiceRequest(callerID string) *models.CreateTimeOffRequest {
	return &models.CreateTimeOffRequest{
		CallerID: callerID,
		StaffID:  r.StaffID,
		StartAt:  r.StartAt,
		EndAt:    r.EndAt,
		Reason:   r.Reason,
	}
}
