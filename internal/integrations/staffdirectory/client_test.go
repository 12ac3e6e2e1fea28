package staffdirectory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testStaff() Staff {
	start := "09:00"
	end := "18:00"
	return Staff{
		ID:       "stf_1",
		FullName: "Анна Соколова",
		Role:     "stylist",
		IsActive: true,
		Schedule: WeekSchedule{
			Monday:  DaySchedule{IsWorking: true, StartTime: &start, EndTime: &end},
			Tuesday: DaySchedule{IsWorking: true, StartTime: &start, EndTime: &end},
		},
	}
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 2*time.Second, 100, nopLogger{})
}

func TestClient_GetStaff(t *testing.T) {
	staff := testStaff()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/staff/stf_1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(staff))
	}))

	got, err := client.GetStaff(context.Background(), "stf_1")

	require.NoError(t, err)
	assert.Equal(t, "stf_1", got.ID)
	assert.Equal(t, "Анна Соколова", got.FullName)
	assert.True(t, got.Schedule.Monday.IsWorking)
}

func TestClient_GetStaff_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetStaff(context.Background(), "stf_missing")

	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestClient_GetStaff_ServerErrorDegrades(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.GetStaff(context.Background(), "stf_1")

	assert.ErrorIs(t, err, ErrServiceDegraded)
}

func TestClient_GetStaff_NetworkErrorDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(server.URL, time.Second, 100, nopLogger{})
	server.Close()

	_, err := client.GetStaff(context.Background(), "stf_1")

	assert.ErrorIs(t, err, ErrServiceDegraded)
}

func TestClient_GetService(t *testing.T) {
	price := 1500.0
	service := Service{
		ID:              "svc_1",
		Name:            "Стрижка",
		DurationMinutes: 45,
		Price:           &price,
		StaffIDs:        []string{"stf_1", "stf_2"},
		IsActive:        true,
	}
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/services/svc_1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(service))
	}))

	got, err := client.GetService(context.Background(), "svc_1")

	require.NoError(t, err)
	assert.Equal(t, 45, got.DurationMinutes)
	assert.Equal(t, 1500.0, got.BasePrice())
	assert.True(t, got.IsServedBy("stf_1"))
	assert.False(t, got.IsServedBy("stf_3"))
}

func TestClient_ListStaff(t *testing.T) {
	staff := testStaff()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/staff", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
			"staff": []Staff{staff},
		}))
	}))

	got, err := client.ListStaff(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "stf_1", got[0].ID)
}

func TestClient_RedisCacheServesSecondCall(t *testing.T) {
	mini := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	var hits atomic.Int64
	staff := testStaff()
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(staff))
	}))
	client.UseRedisCache(redisClient, time.Minute)

	first, err := client.GetStaff(context.Background(), "stf_1")
	require.NoError(t, err)

	second, err := client.GetStaff(context.Background(), "stf_1")
	require.NoError(t, err)

	assert.Equal(t, int64(1), hits.Load(), "second call must be served from cache")
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.FullName, second.FullName)
}

func TestWeekSchedule_ToDomain(t *testing.T) {
	staff := testStaff()

	schedule := staff.Schedule.ToDomain()

	monday := schedule.Monday
	assert.True(t, monday.IsWorking)
	assert.Equal(t, "09:00", monday.StartTime.String())
	assert.Equal(t, "18:00", monday.EndTime.String())

	// День без границ превращается в выходной
	assert.False(t, schedule.Sunday.IsWorking)
}

func TestService_IsServedBy_EmptyListMeansAnyStaff(t *testing.T) {
	service := Service{ID: "svc_1", DurationMinutes: 30}

	assert.True(t, service.IsServedBy("stf_1"))
	assert.True(t, service.IsServedBy("stf_999"))
}
