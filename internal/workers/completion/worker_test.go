package completion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingService struct {
	calls int
	gotAt time.Time
	count int
	err   error
}

func (f *fakeBookingService) CompleteFinished(ctx context.Context, now time.Time) (int, error) {
	f.calls++
	f.gotAt = now
	return f.count, f.err
}

func TestRun_SweepsFinishedBookings(t *testing.T) {
	service := &fakeBookingService{count: 3}
	worker := New(service, "@every 5m", time.UTC, nopLogger{})

	worker.run()

	assert.Equal(t, 1, service.calls)
	assert.False(t, service.gotAt.IsZero())
}

func TestRun_ServiceErrorDoesNotPanic(t *testing.T) {
	service := &fakeBookingService{err: errors.New("db down")}
	worker := New(service, "@every 5m", time.UTC, nopLogger{})

	worker.run()

	assert.Equal(t, 1, service.calls)
}

func TestStart_InvalidSchedule(t *testing.T) {
	worker := New(&fakeBookingService{}, "not-a-schedule", time.UTC, nopLogger{})

	err := worker.Start()

	require.Error(t, err)
}

func TestStartStop(t *testing.T) {
	worker := New(&fakeBookingService{}, "@every 1h", time.UTC, nopLogger{})

	require.NoError(t, worker.Start())
	worker.Stop()
}

func TestStop_WithoutStart(t *testing.T) {
	worker := New(&fakeBookingService{}, "@every 1h", time.UTC, nopLogger{})

	// Не должен паниковать, если планировщик не запускался
	worker.Stop()
}
