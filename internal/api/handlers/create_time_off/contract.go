package create_time_off

import (
	"context"

	"github.com/m04kA/SBP-SchedulingService/internal/service/timeoff/models"
)

type TimeOffService interface {
	Create(ctx context.Context, req *models.CreateTimeOffRequest) (*models.TimeOffResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
