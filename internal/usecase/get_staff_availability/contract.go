package get_staff_availability

import (
	"context"
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	"github.com/m04kA/SBP-SchedulingService/internal/integrations/staffdirectory"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetWithFilter получает бронирования сотрудника на конкретную дату
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// TimeOffRepository интерфейс репозитория отгулов
type TimeOffRepository interface {
	// ListApplicableToStaff получает отгулы сотрудника и общие блокировки, пересекающие интервал
	ListApplicableToStaff(ctx context.Context, staffID string, from, to time.Time) ([]*domain.TimeOff, error)
}

// StaffDirectoryClient интерфейс клиента справочника сотрудников и услуг
type StaffDirectoryClient interface {
	GetStaff(ctx context.Context, staffID string) (*staffdirectory.Staff, error)
	GetService(ctx context.Context, serviceID string) (*staffdirectory.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
