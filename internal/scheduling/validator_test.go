package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	"github.com/m04kA/SBP-SchedulingService/pkg/types"
)

func candidateAt(start types.TimeString, durationMinutes int) Candidate {
	return Candidate{
		StaffID:         "stf_1",
		Date:            mondayDate,
		StartTime:       start,
		DurationMinutes: durationMinutes,
	}
}

func TestValidateCandidate_AcceptsFreeSlot(t *testing.T) {
	day := workingDay("09:00", "17:00")

	err := ValidateCandidate(candidateAt("10:00", 30), day, time.UTC, nil, nil)

	assert.NoError(t, err)
}

func TestValidateCandidate_NonWorkingDay(t *testing.T) {
	day := domain.DaySchedule{IsWorking: false}

	err := ValidateCandidate(candidateAt("10:00", 30), day, time.UTC, nil, nil)

	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestValidateCandidate_WorkingHoursBoundaries(t *testing.T) {
	day := workingDay("09:00", "17:00")

	tests := []struct {
		name    string
		start   string
		wantErr error
	}{
		{"first slot of the day", "09:00", nil},
		{"ends exactly at close", "16:30", nil},
		{"one minute too late", "16:31", ErrOutsideWorkingHours},
		{"starts before opening", "08:45", ErrOutsideWorkingHours},
		{"starts after close", "17:00", ErrOutsideWorkingHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCandidate(candidateAt(types.TimeString(tt.start), 30), day, time.UTC, nil, nil)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCandidate_CrossMidnightRejected(t *testing.T) {
	day := workingDay("09:00", "23:59")

	err := ValidateCandidate(candidateAt("23:30", 45), day, time.UTC, nil, nil)

	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestValidateCandidate_SlotConflict(t *testing.T) {
	day := workingDay("09:00", "17:00")
	bookings := []*domain.Booking{
		booking(1, "stf_1", "10:00", 30, domain.StatusConfirmed),
	}

	// Предложенное бронирование 10:15-10:45 пересекается с существующим 10:00-10:30
	err := ValidateCandidate(candidateAt("10:15", 30), day, time.UTC, nil, bookings)

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestValidateCandidate_TouchingBookingsDoNotConflict(t *testing.T) {
	day := workingDay("09:00", "17:00")
	bookings := []*domain.Booking{
		booking(1, "stf_1", "10:00", 30, domain.StatusConfirmed),
	}

	assert.NoError(t, ValidateCandidate(candidateAt("09:30", 30), day, time.UTC, nil, bookings))
	assert.NoError(t, ValidateCandidate(candidateAt("10:30", 30), day, time.UTC, nil, bookings))
}

func TestValidateCandidate_CancelledBookingReleasesSlot(t *testing.T) {
	day := workingDay("09:00", "17:00")
	bookings := []*domain.Booking{
		booking(1, "stf_1", "10:00", 30, domain.StatusCancelled),
	}

	err := ValidateCandidate(candidateAt("10:00", 30), day, time.UTC, nil, bookings)

	assert.NoError(t, err)
}

func TestValidateCandidate_ExcludesOwnBookingOnReschedule(t *testing.T) {
	day := workingDay("09:00", "17:00")
	ownID := int64(7)
	bookings := []*domain.Booking{
		booking(7, "stf_1", "10:00", 30, domain.StatusConfirmed),
	}

	candidate := candidateAt("10:15", 30)
	candidate.ExcludeBookingID = &ownID

	// Перенос на пересекающееся со своим же интервалом время допустим
	assert.NoError(t, ValidateCandidate(candidate, day, time.UTC, nil, bookings))

	// Но чужое бронирование по-прежнему конфликтует
	other := candidateAt("10:15", 30)
	otherID := int64(8)
	other.ExcludeBookingID = &otherID
	assert.ErrorIs(t, ValidateCandidate(other, day, time.UTC, nil, bookings), ErrSlotConflict)
}

func TestValidateCandidate_TimeOffWins(t *testing.T) {
	day := workingDay("09:00", "17:00")
	timeOffs := []*domain.TimeOff{
		timeOffFor(domain.StaffScopeAll,
			time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 2, 23, 59, 0, 0, time.UTC)),
	}

	err := ValidateCandidate(candidateAt("10:00", 30), day, time.UTC, timeOffs, nil)

	assert.ErrorIs(t, err, ErrStaffOnTimeOff)
}

// Порядок проверок фиксирован: отгул сообщается раньше конфликта бронирований
func TestValidateCandidate_ChecksOrdered(t *testing.T) {
	day := workingDay("09:00", "17:00")
	timeOffs := []*domain.TimeOff{
		timeOffFor("stf_1",
			time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)),
	}
	bookings := []*domain.Booking{
		booking(1, "stf_1", "10:00", 30, domain.StatusConfirmed),
	}

	err := ValidateCandidate(candidateAt("10:00", 30), day, time.UTC, timeOffs, bookings)

	assert.ErrorIs(t, err, ErrStaffOnTimeOff)
	assert.NotErrorIs(t, err, ErrSlotConflict)

	// А вне рабочих часов побеждает проверка рабочих часов
	err = ValidateCandidate(candidateAt("08:00", 30), day, time.UTC, timeOffs, bookings)
	require.ErrorIs(t, err, ErrOutsideWorkingHours)
}

func TestIsRejection(t *testing.T) {
	assert.True(t, IsRejection(ErrOutsideWorkingHours))
	assert.True(t, IsRejection(ErrStaffOnTimeOff))
	assert.True(t, IsRejection(ErrSlotConflict))
	assert.False(t, IsRejection(ErrInvalidRecurrence))
	assert.False(t, IsRejection(assert.AnError))
}
