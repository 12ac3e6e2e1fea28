package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID == "" {
		return fmt.Errorf("%w: customerID is required", ErrInvalidInput)
	}

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

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом.
// Сравниваются календарные даты в таймзоне бизнеса, запись на сегодня разрешена.
func validateDate(bookingDate, now time.Time, loc *time.Location) error {
	nowLocal := now.In(loc)

	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, loc)
	nowOnly := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)

	if dateOnly.Before(nowOnly) {
		return fmt.Errorf("%w: %s", ErrInvalidDate, dateOnly.Format(domain.DateFormat))
	}

	return nil
}
