package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	"github.com/m04kA/SBP-SchedulingService/internal/integrations/staffdirectory"
	"github.com/m04kA/SBP-SchedulingService/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Reschedule(ctx context.Context, id int64, staffID, staffName string, date time.Time, startTime types.TimeString) error
}

// TimeOffRepository интерфейс репозитория отгулов
type TimeOffRepository interface {
	ListApplicableToStaff(ctx context.Context, staffID string, from, to time.Time) ([]*domain.TimeOff, error)
}

// StaffDirectoryClient интерфейс клиента справочника сотрудников и услуг
type StaffDirectoryClient interface {
	GetStaff(ctx context.Context, staffID string) (*staffdirectory.Staff, error)
	GetService(ctx context.Context, serviceID string) (*staffdirectory.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
