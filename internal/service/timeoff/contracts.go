package timeoff

import (
	"context"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	"github.com/m04kA/SBP-SchedulingService/internal/integrations/staffdirectory"
)

// TimeOffRepository интерфейс репозитория отгулов
type TimeOffRepository interface {
	Create(ctx context.Context, timeOff *domain.TimeOff) (*domain.TimeOff, error)
	GetByID(ctx context.Context, id int64) (*domain.TimeOff, error)
	ListWithFilter(ctx context.Context, filter domain.TimeOffFilter) ([]*domain.TimeOff, error)
	Delete(ctx context.Context, id int64) error
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
