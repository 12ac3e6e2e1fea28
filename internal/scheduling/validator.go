package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	"github.com/m04kA/SBP-SchedulingService/pkg/types"
)

// Candidate описывает проверяемое бронирование
type Candidate struct {
	StaffID         string
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int

	// ExcludeBookingID исключает бронирование из проверки конфликтов.
	// Используется при переносе, чтобы бронирование не конфликтовало само с собой.
	ExcludeBookingID *int64
}

// ValidateCandidate проверяет кандидата на бронирование. Проверки идут в
// фиксированном порядке: рабочие часы, затем отгулы, затем существующие
// бронирования. Возвращается первая нарушенная проверка, остальные не
// выполняются. Функция чистая: запись бронирования остаётся за вызывающим.
func ValidateCandidate(
	candidate Candidate,
	day domain.DaySchedule,
	loc *time.Location,
	timeOffs []*domain.TimeOff,
	bookings []*domain.Booking,
) error {
	// Шаг 1: Проверяем рабочие часы
	if !day.IsWorking {
		return fmt.Errorf("%w: staff does not work on %s", ErrOutsideWorkingHours, candidate.Date.Format(domain.DateFormat))
	}

	candidateEnd, err := candidate.StartTime.AddMinutes(candidate.DurationMinutes)
	if err != nil {
		// Бронирование должно начинаться и заканчиваться в пределах одних суток
		return fmt.Errorf("%w: booking does not fit within the day", ErrOutsideWorkingHours)
	}

	if candidate.StartTime.IsBefore(day.StartTime) || candidateEnd.IsAfter(day.EndTime) {
		return fmt.Errorf("%w: working hours are %s-%s", ErrOutsideWorkingHours, day.StartTime, day.EndTime)
	}

	interval, err := domain.NewInterval(candidate.Date, candidate.StartTime, candidate.DurationMinutes, loc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutsideWorkingHours, err)
	}

	// Шаг 2: Проверяем отгулы
	for _, timeOff := range timeOffs {
		if !timeOff.AppliesTo(candidate.StaffID) {
			continue
		}
		if interval.Overlaps(timeOff.Interval()) {
			return fmt.Errorf("%w: from %s to %s", ErrStaffOnTimeOff,
				timeOff.StartAt.In(loc).Format(time.RFC3339), timeOff.EndAt.In(loc).Format(time.RFC3339))
		}
	}

	// Шаг 3: Проверяем пересечения с существующими бронированиями
	occupied, err := occupiedIntervals(candidate.StaffID, candidate.ExcludeBookingID, loc, bookings)
	if err != nil {
		return err
	}
	for _, existing := range occupied {
		if interval.Overlaps(existing) {
			return fmt.Errorf("%w: %s overlaps %s-%s", ErrSlotConflict, candidate.StartTime,
				existing.Start.In(loc).Format(domain.TimeFormat), existing.End.In(loc).Format(domain.TimeFormat))
		}
	}

	return nil
}
