package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.CallerID == "" {
		return fmt.Errorf("%w: callerID is required", ErrInvalidInput)
	}

	if req.NewStaffID == nil && req.NewDate == nil && req.NewStartTime == nil {
		return fmt.Errorf("%w: at least one of newStaffID, newDate, newStartTime is required", ErrInvalidInput)
	}

	if req.NewStaffID != nil {
		if *req.NewStaffID == "" {
			return fmt.Errorf("%w: newStaffID must not be empty", ErrInvalidInput)
		}
		if *req.NewStaffID == domain.StaffScopeAll {
			return fmt.Errorf("%w: staffID %q is reserved", ErrInvalidInput, domain.StaffScopeAll)
		}
	}

	if req.NewDate != nil && req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate must not be zero", ErrInvalidInput)
	}

	if req.NewStartTime != nil {
		if req.NewStartTime.IsZero() {
			return fmt.Errorf("%w: newStartTime must not be empty", ErrInvalidInput)
		}
		if err := req.NewStartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid newStartTime format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// validateDate проверяет, что целевая дата не в прошлом по календарю бизнеса
func validateDate(targetDate, now time.Time, loc *time.Location) error {
	nowLocal := now.In(loc)

	dateOnly := time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, loc)
	nowOnly := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)

	if dateOnly.Before(nowOnly) {
		return fmt.Errorf("%w: %s", ErrInvalidDate, dateOnly.Format(domain.DateFormat))
	}

	return nil
}
