package get_staff_availability

import (
	"fmt"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StaffID == "" {
		return fmt.Errorf("%w: staffID is required", ErrInvalidInput)
	}

	// Зарезервированный идентификатор общих блокировок не является сотрудником
	if req.StaffID == domain.StaffScopeAll {
		return fmt.Errorf("%w: staffID %q is reserved", ErrInvalidInput, domain.StaffScopeAll)
	}

	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
