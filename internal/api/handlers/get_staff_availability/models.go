package get_staff_availability

import (
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	getStaffAvailability "github.com/m04kA/SBP-SchedulingService/internal/usecase/get_staff_availability"
)

// StaffAvailabilityResponse HTTP response model
type StaffAvailabilityResponse struct {
	Date            string   `json:"date"`
	StaffID         string   `json:"staffId"`
	ServiceID       string   `json:"serviceId"`
	DurationMinutes int      `json:"durationMinutes"`
	Slots           []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getStaffAvailability.Response) *StaffAvailabilityResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &StaffAvailabilityResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		StaffID:         resp.StaffID,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(staffID, serviceID, dateStr string) (*getStaffAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getStaffAvailability.Request{
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
