package delete_time_off

import (
	"context"

	"github.com/m04kA/SBP-SchedulingService/internal/service/timeoff/models"
)

type TimeOffService interface {
	Delete(ctx context.Context, id int64, req *models.DeleteTimeOffRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
