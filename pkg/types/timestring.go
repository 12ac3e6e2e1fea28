package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeFormat layout for HH:MM values.
const TimeFormat = "15:04"

// minutesPerDay upper bound for intra-day time arithmetic.
const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString returned when a value is not a valid HH:MM time
	ErrInvalidTimeString = errors.New("types: invalid time string format")

	// ErrTimeOutOfRange returned when time arithmetic leaves the 00:00-23:59 range
	ErrTimeOutOfRange = errors.New("types: time out of range")
)

// TimeString represents a wall-clock time of day as "HH:MM".
// It is stored in a TIME column and compared in minute precision.
type TimeString string

// NewTimeString builds a TimeString from a time.Time, truncating to minutes.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks the "HH:MM" format.
func (t TimeString) Validate() error {
	if _, err := time.Parse(TimeFormat, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// TotalMinutes returns minutes since midnight.
func (t TimeString) TotalMinutes() (int, error) {
	parsed, err := time.Parse(TimeFormat, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// IsBefore reports whether t is strictly earlier than other.
// Invalid values compare as not-before.
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.TotalMinutes()
	if err != nil {
		return false
	}
	b, err := other.TotalMinutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	a, err := t.TotalMinutes()
	if err != nil {
		return false
	}
	b, err := other.TotalMinutes()
	if err != nil {
		return false
	}
	return a > b
}

// AddMinutes returns the time shifted by m minutes.
// The result must stay within the same day.
func (t TimeString) AddMinutes(m int) (TimeString, error) {
	total, err := t.TotalMinutes()
	if err != nil {
		return "", err
	}

	total += m
	if total < 0 || total >= minutesPerDay {
		return "", fmt.Errorf("%w: %s %+d minutes", ErrTimeOutOfRange, string(t), m)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// OnDate anchors the time of day to a calendar date in the given location.
func (t TimeString) OnDate(date time.Time, loc *time.Location) (time.Time, error) {
	total, err := t.TotalMinutes()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), total/60, total%60, 0, 0, loc), nil
}

// Value implements driver.Valuer for TIME columns.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan implements sql.Scanner. Postgres returns TIME values either as
// "HH:MM:SS" strings or as time.Time depending on the driver path.
func (t *TimeString) Scan(src interface{}) error {
	if src == nil {
		*t = ""
		return nil
	}

	switch v := src.(type) {
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// TIME columns come back with seconds, keep HH:MM only
	if len(s) > 5 {
		s = s[:5]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}
