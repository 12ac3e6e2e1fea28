package get_combined_availability

import (
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	getCombinedAvailability "github.com/m04kA/SBP-SchedulingService/internal/usecase/get_combined_availability"
)

// CombinedAvailabilityResponse HTTP response model.
// Slots содержит только времена, на которые свободен хотя бы один сотрудник.
type CombinedAvailabilityResponse struct {
	Date            string              `json:"date"`
	ServiceID       string              `json:"serviceId"`
	DurationMinutes int                 `json:"durationMinutes"`
	Slots           map[string][]string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCombinedAvailability.Response) *CombinedAvailabilityResponse {
	slots := make(map[string][]string, len(resp.Slots))
	for slot, staffIDs := range resp.Slots {
		slots[slot.String()] = staffIDs
	}

	return &CombinedAvailabilityResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(serviceID, dateStr string) (*getCombinedAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getCombinedAvailability.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
