package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SBP-SchedulingService/pkg/types"
)

// DaySchedule represents the working hours of a staff member on one weekday
type DaySchedule struct {
	IsWorking bool
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Validate checks that a working day has a well-formed time window
func (d DaySchedule) Validate() error {
	if !d.IsWorking {
		return nil
	}
	if err := d.StartTime.Validate(); err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	if err := d.EndTime.Validate(); err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	if !d.StartTime.IsBefore(d.EndTime) {
		return fmt.Errorf("start_time %s must be before end_time %s", d.StartTime, d.EndTime)
	}
	return nil
}

// WeeklySchedule represents the weekly working hours of a staff member.
// IsWorking=false means the staff member does not work that day.
type WeeklySchedule struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// ForWeekday returns the schedule entry for the given weekday
func (w WeeklySchedule) ForWeekday(day time.Weekday) DaySchedule {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{}
	}
}

// Validate checks every working day of the schedule
func (w WeeklySchedule) Validate() error {
	days := []struct {
		name     string
		schedule DaySchedule
	}{
		{"monday", w.Monday},
		{"tuesday", w.Tuesday},
		{"wednesday", w.Wednesday},
		{"thursday", w.Thursday},
		{"friday", w.Friday},
		{"saturday", w.Saturday},
		{"sunday", w.Sunday},
	}
	for _, day := range days {
		if err := day.schedule.Validate(); err != nil {
			return fmt.Errorf("%s: %w", day.name, err)
		}
	}
	return nil
}
