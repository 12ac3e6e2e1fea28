package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	"github.com/m04kA/SBP-SchedulingService/internal/integrations/customerdirectory"
	"github.com/m04kA/SBP-SchedulingService/internal/integrations/staffdirectory"
	"github.com/m04kA/SBP-SchedulingService/internal/scheduling"
	"github.com/m04kA/SBP-SchedulingService/pkg/ptr"
)

type fakeBookingRepo struct {
	nextID    int64
	stored    []*domain.Booking
	createErr error
	getErr    error
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}

	f.nextID++
	copied := *booking
	copied.ID = f.nextID
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	f.stored = append(f.stored, &copied)
	return &copied, nil
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	out := make([]*domain.Booking, 0)
	for _, b := range f.stored {
		if filter.StaffID != nil && b.StaffID != *filter.StaffID {
			continue
		}
		if filter.StartDate != nil && !sameDay(b.BookingDate, *filter.StartDate) {
			continue
		}
		if !filter.IncludeInactive && b.Status == domain.StatusCancelled {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

type fakeTimeOffRepo struct {
	timeOffs []*domain.TimeOff
	err      error
}

func (f *fakeTimeOffRepo) ListApplicableToStaff(_ context.Context, _ string, _, _ time.Time) ([]*domain.TimeOff, error) {
	return f.timeOffs, f.err
}

type fakeStaffDirectory struct {
	staff      *staffdirectory.Staff
	staffErr   error
	service    *staffdirectory.Service
	serviceErr error
}

func (f *fakeStaffDirectory) GetStaff(_ context.Context, _ string) (*staffdirectory.Staff, error) {
	return f.staff, f.staffErr
}

func (f *fakeStaffDirectory) GetService(_ context.Context, _ string) (*staffdirectory.Service, error) {
	return f.service, f.serviceErr
}

type fakeCustomerDirectory struct {
	customer *customerdirectory.Customer
	err      error
}

func (f *fakeCustomerDirectory) GetCustomerWithGracefulDegradation(_ context.Context, _ string) (*customerdirectory.Customer, error) {
	return f.customer, f.err
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testStaff() *staffdirectory.Staff {
	start, end := "09:00", "17:00"
	day := staffdirectory.DaySchedule{IsWorking: true, StartTime: &start, EndTime: &end}
	return &staffdirectory.Staff{
		ID:       "staff-1",
		FullName: "Анна Соколова",
		IsActive: true,
		Schedule: staffdirectory.WeekSchedule{
			Monday:    day,
			Tuesday:   day,
			Wednesday: day,
			Thursday:  day,
			Friday:    day,
		},
	}
}

func testService() *staffdirectory.Service {
	return &staffdirectory.Service{
		ID:              "svc-1",
		Name:            "Стрижка",
		DurationMinutes: 30,
		Price:           ptr.Ptr(1500.0),
		StaffIDs:        []string{"staff-1"},
		IsActive:        true,
	}
}

func testCustomer() *customerdirectory.Customer {
	return &customerdirectory.Customer{ID: "cust-1", FullName: "Пётр Иванов", IsActive: true}
}

var (
	// Понедельник
	mondayDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	fixedNow   = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
)

type testEnv struct {
	bookingRepo *fakeBookingRepo
	timeOffRepo *fakeTimeOffRepo
	staffDir    *fakeStaffDirectory
	customerDir *fakeCustomerDirectory
	uc          *UseCase
}

func newTestEnv() *testEnv {
	env := &testEnv{
		bookingRepo: &fakeBookingRepo{},
		timeOffRepo: &fakeTimeOffRepo{},
		staffDir:    &fakeStaffDirectory{staff: testStaff(), service: testService()},
		customerDir: &fakeCustomerDirectory{customer: testCustomer()},
	}
	env.uc = NewUseCase(env.bookingRepo, env.timeOffRepo, env.staffDir, env.customerDir, fakeTxManager{}, time.UTC, nopLogger{})
	env.uc.timeProvider = fixedTime{now: fixedNow}
	return env
}

func validRequest() *Request {
	return &Request{
		CustomerID: "cust-1",
		StaffID:    "staff-1",
		ServiceID:  "svc-1",
		Date:       mondayDate,
		StartTime:  "10:00",
	}
}

func TestExecute_CreatesSingleBooking(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	assert.Empty(t, resp.Rejected)
	assert.Nil(t, resp.SeriesID)

	booking := resp.Bookings[0]
	assert.Equal(t, string(domain.StatusPending), booking.Status)
	assert.Equal(t, "Пётр Иванов", booking.CustomerName)
	assert.Equal(t, "Анна Соколова", booking.StaffName)
	assert.Equal(t, "Стрижка", booking.ServiceName)
	assert.Equal(t, 1500.0, booking.ServicePrice)
	assert.Equal(t, 30, booking.DurationMinutes)
	assert.Nil(t, booking.SeriesID)

	assert.Len(t, env.bookingRepo.stored, 1)
}

func TestExecute_PastDateRejected(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.Date = time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_SameDayBookingAllowed(t *testing.T) {
	env := newTestEnv()
	env.uc.timeProvider = fixedTime{now: time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_SlotConflict(t *testing.T) {
	env := newTestEnv()
	env.bookingRepo.stored = []*domain.Booking{{
		ID:              100,
		StaffID:         "staff-1",
		BookingDate:     mondayDate,
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}}

	req := validRequest()
	req.StartTime = "10:15"

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, scheduling.ErrSlotConflict)
	assert.Len(t, env.bookingRepo.stored, 1, "rejected booking must not be persisted")
}

func TestExecute_TouchingSlotAccepted(t *testing.T) {
	env := newTestEnv()
	env.bookingRepo.stored = []*domain.Booking{{
		ID:              100,
		StaffID:         "staff-1",
		BookingDate:     mondayDate,
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}}

	req := validRequest()
	req.StartTime = "10:30"

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.StartTime = "16:45"

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, scheduling.ErrOutsideWorkingHours)
}

func TestExecute_StaffOnTimeOff(t *testing.T) {
	env := newTestEnv()
	env.timeOffRepo.timeOffs = []*domain.TimeOff{{
		ID:      1,
		StaffID: "staff-1",
		StartAt: time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC),
	}}

	req := validRequest()
	req.StartTime = "12:30"

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, scheduling.ErrStaffOnTimeOff)
}

func TestExecute_WeeklySeriesPartialSuccess(t *testing.T) {
	env := newTestEnv()

	// Конфликт на третьей неделе серии
	env.bookingRepo.stored = []*domain.Booking{{
		ID:              100,
		StaffID:         "staff-1",
		BookingDate:     time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusConfirmed,
	}}

	req := validRequest()
	req.Date = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	req.Recurrence = &Recurrence{Frequency: "weekly", Until: time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC)}

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 3)
	require.Len(t, resp.Rejected, 1)
	require.NotNil(t, resp.SeriesID)

	assert.Equal(t, "2025-06-03", resp.Bookings[0].BookingDate.Format(domain.DateFormat))
	assert.Equal(t, "2025-06-10", resp.Bookings[1].BookingDate.Format(domain.DateFormat))
	assert.Equal(t, "2025-06-24", resp.Bookings[2].BookingDate.Format(domain.DateFormat))

	assert.Equal(t, "2025-06-17", resp.Rejected[0].Date.Format(domain.DateFormat))
	assert.Equal(t, "slot_conflict", resp.Rejected[0].Reason)

	for _, booking := range resp.Bookings {
		require.NotNil(t, booking.SeriesID)
		assert.Equal(t, *resp.SeriesID, *booking.SeriesID)
	}
}

func TestExecute_AllOccurrencesRejected(t *testing.T) {
	env := newTestEnv()
	env.timeOffRepo.timeOffs = []*domain.TimeOff{{
		ID:      1,
		StaffID: domain.StaffScopeAll,
		StartAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}}

	req := validRequest()
	req.Date = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	req.Recurrence = &Recurrence{Frequency: "weekly", Until: time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC)}

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoAvailableOccurrences)
	assert.Empty(t, env.bookingRepo.stored)
}

func TestExecute_InvalidRecurrence(t *testing.T) {
	env := newTestEnv()

	req := validRequest()
	req.Recurrence = &Recurrence{Frequency: "daily", Until: time.Date(2025, 6, 24, 0, 0, 0, 0, time.UTC)}

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, scheduling.ErrInvalidRecurrence)
}

func TestExecute_CustomerDirectoryDegradedBooksWithoutName(t *testing.T) {
	env := newTestEnv()
	env.customerDir.customer = nil
	env.customerDir.err = customerdirectory.ErrServiceDegraded

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, resp.Bookings, 1)
	assert.Empty(t, resp.Bookings[0].CustomerName)
}

func TestExecute_CustomerNotFound(t *testing.T) {
	env := newTestEnv()
	env.customerDir.customer = nil
	env.customerDir.err = customerdirectory.ErrCustomerNotFound

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_ServiceNotProvidedByStaff(t *testing.T) {
	env := newTestEnv()
	env.staffDir.service.StaffIDs = []string{"staff-2"}

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotProvidedByStaff)
}

func TestExecute_InactiveStaff(t *testing.T) {
	env := newTestEnv()
	env.staffDir.staff.IsActive = false

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStaffInactive)
}

func TestExecute_StaffNotFound(t *testing.T) {
	env := newTestEnv()
	env.staffDir.staff = nil
	env.staffDir.staffErr = staffdirectory.ErrStaffNotFound

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_RepositoryErrorWrapsInternal(t *testing.T) {
	env := newTestEnv()
	env.bookingRepo.getErr = errors.New("connection refused")

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_InvalidInput(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "empty customer id", mutate: func(r *Request) { r.CustomerID = "" }},
		{name: "empty staff id", mutate: func(r *Request) { r.StaffID = "" }},
		{name: "reserved staff id", mutate: func(r *Request) { r.StaffID = domain.StaffScopeAll }},
		{name: "empty service id", mutate: func(r *Request) { r.ServiceID = "" }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty start time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "malformed start time", mutate: func(r *Request) { r.StartTime = "25:99" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
