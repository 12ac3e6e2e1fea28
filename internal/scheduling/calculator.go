package scheduling

import (
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	"github.com/m04kA/SBP-SchedulingService/pkg/types"
)

// AvailableSlots генерирует список свободных слотов сотрудника на указанную дату.
// Кандидаты идут с фиксированным шагом domain.SlotStepMinutes от начала рабочего
// дня, длительность каждого кандидата равна длительности услуги. Кандидат
// попадает в результат, только если он целиком укладывается в рабочие часы и не
// пересекается ни с отгулами, ни с занимающими слот бронированиями сотрудника.
func AvailableSlots(
	staffID string,
	day domain.DaySchedule,
	durationMinutes int,
	date time.Time,
	loc *time.Location,
	bookings []*domain.Booking,
	timeOffs []*domain.TimeOff,
) ([]types.TimeString, error) {
	// Если сотрудник не работает в этот день - слотов нет
	if !day.IsWorking {
		return []types.TimeString{}, nil
	}

	occupied, err := occupiedIntervals(staffID, nil, loc, bookings)
	if err != nil {
		return nil, err
	}
	blocked := blockedIntervals(staffID, timeOffs)

	slots := make([]types.TimeString, 0)
	cursor := day.StartTime

	for cursor.IsBefore(day.EndTime) {
		slotEnd, err := cursor.AddMinutes(durationMinutes)
		if err != nil {
			// Кандидат выходит за границы суток
			break
		}
		if slotEnd.IsAfter(day.EndTime) {
			break
		}

		candidate, err := domain.NewInterval(date, cursor, durationMinutes, loc)
		if err != nil {
			return nil, err
		}

		if !overlapsAny(candidate, blocked) && !overlapsAny(candidate, occupied) {
			slots = append(slots, cursor)
		}

		cursor, err = cursor.AddMinutes(domain.SlotStepMinutes)
		if err != nil {
			break
		}
	}

	return slots, nil
}

// occupiedIntervals собирает интервалы занимающих слот бронирований сотрудника.
// Бронирование с ID, равным excludeID, пропускается (используется при переносе).
func occupiedIntervals(staffID string, excludeID *int64, loc *time.Location, bookings []*domain.Booking) ([]domain.Interval, error) {
	intervals := make([]domain.Interval, 0, len(bookings))

	for _, booking := range bookings {
		if excludeID != nil && booking.ID == *excludeID {
			continue
		}
		if booking.StaffID != staffID {
			continue
		}
		// Отменённые бронирования слот не занимают
		if !booking.IsOccupying() {
			continue
		}

		interval, err := booking.Interval(loc)
		if err != nil {
			// Бронирование с некорректным временем пропускаем
			continue
		}
		intervals = append(intervals, interval)
	}

	return intervals, nil
}

// blockedIntervals собирает интервалы отгулов, действующих на сотрудника.
// Учитываются и персональные отгулы, и закрытия всего бизнеса.
func blockedIntervals(staffID string, timeOffs []*domain.TimeOff) []domain.Interval {
	intervals := make([]domain.Interval, 0, len(timeOffs))

	for _, timeOff := range timeOffs {
		if !timeOff.AppliesTo(staffID) {
			continue
		}
		intervals = append(intervals, timeOff.Interval())
	}

	return intervals
}

// overlapsAny проверяет пересечение кандидата хотя бы с одним интервалом
func overlapsAny(candidate domain.Interval, intervals []domain.Interval) bool {
	for _, interval := range intervals {
		if candidate.Overlaps(interval) {
			return true
		}
	}
	return false
}
