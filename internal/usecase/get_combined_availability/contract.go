package get_combined_availability

import (
	"context"
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	"github.com/m04kA/SBP-SchedulingService/internal/integrations/staffdirectory"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetWithFilter получает все бронирования на конкретную дату
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// TimeOffRepository интерфейс репозитория отгулов
type TimeOffRepository interface {
	// ListInRange получает все отгулы и общие блокировки, пересекающие интервал
	ListInRange(ctx context.Context, from, to time.Time) ([]*domain.TimeOff, error)
}

// StaffDirectoryClient интерфейс клиента справочника сотрудников и услуг
type StaffDirectoryClient interface {
	GetService(ctx context.Context, serviceID string) (*staffdirectory.Service, error)
	ListStaff(ctx context.Context) ([]*staffdirectory.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
