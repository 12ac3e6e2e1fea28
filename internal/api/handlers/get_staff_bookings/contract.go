package get_staff_bookings

import (
	"context"

	"github.com/m04kA/SBP-SchedulingService/internal/service/bookings/models"
)

type BookingService interface {
	GetStaffDay(ctx context.Context, req *models.GetStaffDayRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
