package timeoff

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	timeoffRepo "github.com/m04kA/SBP-SchedulingService/internal/infra/storage/timeoff"
	staffClient "github.com/m04kA/SBP-SchedulingService/internal/integrations/staffdirectory"
	"github.com/m04kA/SBP-SchedulingService/internal/service/timeoff/models"
	"github.com/m04kA/SBP-SchedulingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...any)  {}
func (nopLogger) Warn(format string, v ...any)  {}
func (nopLogger) Error(format string, v ...any) {}

type fakeTimeOffRepo struct {
	timeOffs  map[int64]*domain.TimeOff
	nextID    int64
	gotFilter *domain.TimeOffFilter
	err       error
}

func newFakeTimeOffRepo() *fakeTimeOffRepo {
	return &fakeTimeOffRepo{timeOffs: make(map[int64]*domain.TimeOff), nextID: 1}
}

func (f *fakeTimeOffRepo) Create(ctx context.Context, timeOff *domain.TimeOff) (*domain.TimeOff, error) {
	if f.err != nil {
		return nil, f.err
	}
	created := *timeOff
	created.ID = f.nextID
	created.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	f.timeOffs[created.ID] = &created
	f.nextID++
	return &created, nil
}

func (f *fakeTimeOffRepo) GetByID(ctx context.Context, id int64) (*domain.TimeOff, error) {
	timeOff, ok := f.timeOffs[id]
	if !ok {
		return nil, timeoffRepo.ErrTimeOffNotFound
	}
	copied := *timeOff
	return &copied, nil
}

func (f *fakeTimeOffRepo) ListWithFilter(ctx context.Context, filter domain.TimeOffFilter) ([]*domain.TimeOff, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.gotFilter = &filter
	var result []*domain.TimeOff
	for _, timeOff := range f.timeOffs {
		copied := *timeOff
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeTimeOffRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.timeOffs[id]; !ok {
		return timeoffRepo.ErrTimeOffNotFound
	}
	delete(f.timeOffs, id)
	return nil
}

type fakeDirectory struct {
	staff    map[string]*staffClient.Staff
	gotCalls []string
	err      error
}

func (f *fakeDirectory) GetStaff(ctx context.Context, staffID string) (*staffClient.Staff, error) {
	f.gotCalls = append(f.gotCalls, staffID)
	if f.err != nil {
		return nil, f.err
	}
	staff, ok := f.staff[staffID]
	if !ok {
		return nil, staffClient.ErrStaffNotFound
	}
	return staff, nil
}

func testDirectory() *fakeDirectory {
	return &fakeDirectory{staff: map[string]*staffClient.Staff{
		"staff-1": {ID: "staff-1", FullName: "Анна Соколова", Role: "staff", IsActive: true},
		"mgr-1":   {ID: "mgr-1", FullName: "Мария Кузнецова", Role: staffClient.RoleManager, IsActive: true},
	}}
}

func newTestService(repo *fakeTimeOffRepo, dir *fakeDirectory) *Service {
	return NewService(repo, dir, nopLogger{})
}

func createRequest() *models.CreateTimeOffRequest {
	return &models.CreateTimeOffRequest{
		CallerID: "mgr-1",
		StaffID:  "staff-1",
		StartAt:  time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		EndAt:    time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		Reason:   ptr.Ptr("Отпуск"),
	}
}

func TestService_Create_ManagerCreatesStaffTimeOff(t *testing.T) {
	repo := newFakeTimeOffRepo()
	svc := newTestService(repo, testDirectory())

	resp, err := svc.Create(context.Background(), createRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "staff-1", resp.StaffID)
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), resp.StartAt)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), resp.EndAt)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, "Отпуск", *resp.Reason)
	assert.Len(t, repo.timeOffs, 1)
}

func TestService_Create_BusinessWideHoliday(t *testing.T) {
	repo := newFakeTimeOffRepo()
	dir := testDirectory()
	svc := newTestService(repo, dir)

	req := createRequest()
	req.StaffID = domain.StaffScopeAll
	req.Reason = ptr.Ptr("Санитарный день")

	resp, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, domain.StaffScopeAll, resp.StaffID)
	// Справочник опрашивается только для проверки прав вызывающего
	assert.Equal(t, []string{"mgr-1"}, dir.gotCalls)
}

func TestService_Create_NonManagerDenied(t *testing.T) {
	repo := newFakeTimeOffRepo()
	svc := newTestService(repo, testDirectory())

	req := createRequest()
	req.CallerID = "staff-1"

	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.timeOffs)
}

func TestService_Create_UnknownStaffRejected(t *testing.T) {
	repo := newFakeTimeOffRepo()
	svc := newTestService(repo, testDirectory())

	req := createRequest()
	req.StaffID = "staff-99"

	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestService_Create_InvalidPeriod(t *testing.T) {
	repo := newFakeTimeOffRepo()
	svc := newTestService(repo, testDirectory())

	req := createRequest()
	req.StartAt = req.EndAt

	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Create_ReasonTooLong(t *testing.T) {
	repo := newFakeTimeOffRepo()
	svc := newTestService(repo, testDirectory())

	req := createRequest()
	req.Reason = ptr.Ptr(strings.Repeat("a", domain.MaxTimeOffReasonLength+1))

	_, err := svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Create_DirectoryDegradedFailsClosed(t *testing.T) {
	repo := newFakeTimeOffRepo()
	dir := &fakeDirectory{err: staffClient.ErrServiceDegraded}
	svc := newTestService(repo, dir)

	_, err := svc.Create(context.Background(), createRequest())

	assert.ErrorIs(t, err, ErrDirectoryUnavailable)
}

func TestService_List_FilterPassedThrough(t *testing.T) {
	repo := newFakeTimeOffRepo()
	svc := newTestService(repo, testDirectory())

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	resp, err := svc.List(context.Background(), &models.ListTimeOffRequest{
		CallerID: "mgr-1",
		StaffID:  ptr.Ptr("staff-1"),
		From:     &from,
		To:       &to,
	})

	require.NoError(t, err)
	assert.Len(t, resp.TimeOffs, 1)

	require.NotNil(t, repo.gotFilter)
	require.NotNil(t, repo.gotFilter.StaffID)
	assert.Equal(t, "staff-1", *repo.gotFilter.StaffID)
	assert.Equal(t, from, *repo.gotFilter.From)
	assert.Equal(t, to, *repo.gotFilter.To)
}

func TestService_List_InvalidPeriod(t *testing.T) {
	repo := newFakeTimeOffRepo()
	svc := newTestService(repo, testDirectory())

	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), &models.ListTimeOffRequest{
		CallerID: "mgr-1",
		From:     &from,
		To:       &to,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_List_NonManagerDenied(t *testing.T) {
	repo := newFakeTimeOffRepo()
	svc := newTestService(repo, testDirectory())

	_, err := svc.List(context.Background(), &models.ListTimeOffRequest{CallerID: "staff-1"})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Delete_RemovesRecord(t *testing.T) {
	repo := newFakeTimeOffRepo()
	svc := newTestService(repo, testDirectory())

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 1, &models.DeleteTimeOffRequest{CallerID: "mgr-1"})

	require.NoError(t, err)
	assert.Empty(t, repo.timeOffs)
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := newFakeTimeOffRepo()
	svc := newTestService(repo, testDirectory())

	err := svc.Delete(context.Background(), 42, &models.DeleteTimeOffRequest{CallerID: "mgr-1"})

	assert.ErrorIs(t, err, ErrTimeOffNotFound)
}

func TestService_Delete_NonManagerDenied(t *testing.T) {
	repo := newFakeTimeOffRepo()
	svc := newTestService(repo, testDirectory())

	_, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 1, &models.DeleteTimeOffRequest{CallerID: "staff-1"})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Len(t, repo.timeOffs, 1)
}
