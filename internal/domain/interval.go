package domain

import (
	"time"

	"github.com/m04kA/SBP-SchedulingService/pkg/types"
)

// Interval is a half-open time interval [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds the interval occupied by a slot of durationMinutes
// starting at start on the given date in loc. Intervals crossing midnight
// are rejected.
func NewInterval(date time.Time, start types.TimeString, durationMinutes int, loc *time.Location) (Interval, error) {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return Interval{}, err
	}
	startAt, err := start.OnDate(date, loc)
	if err != nil {
		return Interval{}, err
	}
	endAt, err := end.OnDate(date, loc)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: startAt, End: endAt}, nil
}

// Overlaps reports whether two half-open intervals intersect.
// Intervals that only touch at an endpoint do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Contains reports whether the instant t falls inside the interval
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// DayBounds returns the half-open interval covering the whole calendar
// day of date in loc
func DayBounds(date time.Time, loc *time.Location) Interval {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return Interval{Start: start, End: start.AddDate(0, 0, 1)}
}
