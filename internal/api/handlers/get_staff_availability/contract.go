package get_staff_availability

import (
	"context"

	getStaffAvailability "github.com/m04kA/SBP-SchedulingService/internal/usecase/get_staff_availability"
)

type GetStaffAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getStaffAvailability.Request) (*getStaffAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
