package get_combined_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	"github.com/m04kA/SBP-SchedulingService/internal/integrations/staffdirectory"
	"github.com/m04kA/SBP-SchedulingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings  []*domain.Booking
	err       error
	gotFilter *domain.BookingsFilter
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.gotFilter = &filter
	return f.bookings, f.err
}

type fakeTimeOffRepo struct {
	timeOffs []*domain.TimeOff
	err      error
}

func (f *fakeTimeOffRepo) ListInRange(_ context.Context, _, _ time.Time) ([]*domain.TimeOff, error) {
	return f.timeOffs, f.err
}

type fakeDirectory struct {
	service    *staffdirectory.Service
	serviceErr error
	staff      []*staffdirectory.Staff
	listErr    error
}

func (f *fakeDirectory) GetService(_ context.Context, _ string) (*staffdirectory.Service, error) {
	return f.service, f.serviceErr
}

func (f *fakeDirectory) ListStaff(_ context.Context) ([]*staffdirectory.Staff, error) {
	return f.staff, f.listErr
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func staffMember(id, mondayStart, mondayEnd string) *staffdirectory.Staff {
	return &staffdirectory.Staff{
		ID:       id,
		FullName: "Мастер " + id,
		IsActive: true,
		Schedule: staffdirectory.WeekSchedule{
			Monday: staffdirectory.DaySchedule{IsWorking: true, StartTime: &mondayStart, EndTime: &mondayEnd},
		},
	}
}

func hourService(staffIDs ...string) *staffdirectory.Service {
	return &staffdirectory.Service{
		ID:              "svc-1",
		Name:            "Массаж",
		DurationMinutes: 60,
		StaffIDs:        staffIDs,
		IsActive:        true,
	}
}

// Понедельник
var mondayDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func newTestUseCase(bookings *fakeBookingRepo, timeOffs *fakeTimeOffRepo, dir *fakeDirectory) *UseCase {
	return NewUseCase(bookings, timeOffs, dir, time.UTC, nopLogger{})
}

func TestExecute_MergesStaffIntoCombinedMap(t *testing.T) {
	// Справочник отдаёт сотрудников в произвольном порядке
	dir := &fakeDirectory{
		service: hourService(),
		staff: []*staffdirectory.Staff{
			staffMember("staff-b", "10:00", "13:00"),
			staffMember("staff-a", "09:00", "12:00"),
		},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeTimeOffRepo{}, dir)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: mondayDate})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, []string{"staff-a"}, resp.Slots[types.TimeString("09:00")])
	assert.Equal(t, []string{"staff-a", "staff-b"}, resp.Slots[types.TimeString("10:30")])
	assert.Equal(t, []string{"staff-b"}, resp.Slots[types.TimeString("11:15")])
	assert.Equal(t, []string{"staff-b"}, resp.Slots[types.TimeString("12:00")])
	assert.NotContains(t, resp.Slots, types.TimeString("12:15"))
}

func TestExecute_EmptyServiceStaffListMeansWholeTeam(t *testing.T) {
	dir := &fakeDirectory{
		service: hourService(),
		staff: []*staffdirectory.Staff{
			staffMember("staff-a", "09:00", "12:00"),
			staffMember("staff-b", "09:00", "12:00"),
		},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeTimeOffRepo{}, dir)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: mondayDate})
	require.NoError(t, err)

	assert.Equal(t, []string{"staff-a", "staff-b"}, resp.Slots[types.TimeString("09:00")])
}

func TestExecute_FiltersByServiceStaffList(t *testing.T) {
	dir := &fakeDirectory{
		service: hourService("staff-a"),
		staff: []*staffdirectory.Staff{
			staffMember("staff-a", "09:00", "12:00"),
			staffMember("staff-b", "09:00", "12:00"),
		},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeTimeOffRepo{}, dir)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: mondayDate})
	require.NoError(t, err)

	assert.Equal(t, []string{"staff-a"}, resp.Slots[types.TimeString("09:00")])
}

func TestExecute_SkipsInactiveStaff(t *testing.T) {
	dismissed := staffMember("staff-b", "09:00", "12:00")
	dismissed.IsActive = false

	dir := &fakeDirectory{
		service: hourService(),
		staff:   []*staffdirectory.Staff{staffMember("staff-a", "09:00", "12:00"), dismissed},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeTimeOffRepo{}, dir)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: mondayDate})
	require.NoError(t, err)

	assert.Equal(t, []string{"staff-a"}, resp.Slots[types.TimeString("09:00")])
}

func TestExecute_BookingRemovesStaffFromConflictingSlots(t *testing.T) {
	dir := &fakeDirectory{
		service: hourService(),
		staff: []*staffdirectory.Staff{
			staffMember("staff-a", "09:00", "12:00"),
			staffMember("staff-b", "10:00", "13:00"),
		},
	}
	bookingRepo := &fakeBookingRepo{bookings: []*domain.Booking{{
		ID:              1,
		StaffID:         "staff-a",
		BookingDate:     mondayDate,
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          domain.StatusPending,
	}}}
	uc := newTestUseCase(bookingRepo, &fakeTimeOffRepo{}, dir)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: mondayDate})
	require.NoError(t, err)

	assert.Equal(t, []string{"staff-a"}, resp.Slots[types.TimeString("09:00")])
	assert.Equal(t, []string{"staff-b"}, resp.Slots[types.TimeString("10:00")])
	assert.Equal(t, []string{"staff-a", "staff-b"}, resp.Slots[types.TimeString("11:00")])
	assert.NotContains(t, resp.Slots, types.TimeString("09:15"))
}

func TestExecute_BusinessWideTimeOffEmptiesMap(t *testing.T) {
	dir := &fakeDirectory{
		service: hourService(),
		staff:   []*staffdirectory.Staff{staffMember("staff-a", "09:00", "12:00")},
	}
	timeOffRepo := &fakeTimeOffRepo{timeOffs: []*domain.TimeOff{{
		ID:      1,
		StaffID: domain.StaffScopeAll,
		StartAt: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
	}}}
	uc := newTestUseCase(&fakeBookingRepo{}, timeOffRepo, dir)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: mondayDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoCandidatesSkipsRepositories(t *testing.T) {
	bookingRepo := &fakeBookingRepo{}
	dir := &fakeDirectory{service: hourService("staff-z"), staff: []*staffdirectory.Staff{staffMember("staff-a", "09:00", "12:00")}}
	uc := newTestUseCase(bookingRepo, &fakeTimeOffRepo{}, dir)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: mondayDate})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	assert.Nil(t, bookingRepo.gotFilter)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeTimeOffRepo{}, &fakeDirectory{serviceErr: staffdirectory.ErrServiceNotFound})

	_, err := uc.Execute(context.Background(), &Request{ServiceID: "ghost", Date: mondayDate})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_DirectoryDegradedOnListStaff(t *testing.T) {
	dir := &fakeDirectory{service: hourService(), listErr: staffdirectory.ErrServiceDegraded}
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeTimeOffRepo{}, dir)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: "svc-1", Date: mondayDate})
	assert.ErrorIs(t, err, ErrDirectoryUnavailable)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeTimeOffRepo{}, &fakeDirectory{})

	_, err := uc.Execute(context.Background(), &Request{Date: mondayDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: "svc-1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
