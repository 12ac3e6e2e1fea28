package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	"github.com/m04kA/SBP-SchedulingService/internal/integrations/staffdirectory"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID string, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, transactionID *string) error
	Cancel(ctx context.Context, id int64, reason string) error
	ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error)
}

// StaffDirectoryClient интерфейс клиента справочника сотрудников
type StaffDirectoryClient interface {
	GetStaff(ctx context.Context, staffID string) (*staffdirectory.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
