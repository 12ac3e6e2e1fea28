package completion

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// runTimeout ограничивает длительность одного прогона
const runTimeout = 2 * time.Minute

type BookingService interface {
	CompleteFinished(ctx context.Context, now time.Time) (int, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker фоновая задача, переводящая завершившиеся подтвержденные
// бронирования в статус completed. Запускается по cron-расписанию.
type Worker struct {
	service  BookingService
	schedule string
	location *time.Location
	logger   Logger

	cron *cron.Cron
}

func New(service BookingService, schedule string, location *time.Location, logger Logger) *Worker {
	return &Worker{
		service:  service,
		schedule: schedule,
		location: location,
		logger:   logger,
	}
}

// Start регистрирует задачу и запускает планировщик
func (w *Worker) Start() error {
	c := cron.New(cron.WithLocation(w.location))

	if _, err := c.AddFunc(w.schedule, w.run); err != nil {
		return fmt.Errorf("failed to schedule completion job %q: %w", w.schedule, err)
	}

	c.Start()
	w.cron = c

	w.logger.Info("Completion worker started (schedule=%s)", w.schedule)
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущего прогона
func (w *Worker) Stop() {
	if w.cron == nil {
		return
	}

	ctx := w.cron.Stop()
	<-ctx.Done()

	w.logger.Info("Completion worker stopped")
}

func (w *Worker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	now := time.Now().In(w.location)

	count, err := w.service.CompleteFinished(ctx, now)
	if err != nil {
		w.logger.Error("Completion sweep failed: %v", err)
		return
	}

	if count > 0 {
		w.logger.Info("Completion sweep finished: completed=%d", count)
	}
}
