package domain

import "time"

// RecurrenceFrequency determines how occurrences of a series are spaced
type RecurrenceFrequency string

const (
	FrequencyWeekly  RecurrenceFrequency = "weekly"
	FrequencyMonthly RecurrenceFrequency = "monthly"
)

// IsValid returns true if the frequency is supported
func (f RecurrenceFrequency) IsValid() bool {
	return f == FrequencyWeekly || f == FrequencyMonthly
}

// RecurrenceRule describes how a booking repeats.
// Until is the last date (inclusive) an occurrence may fall on.
type RecurrenceRule struct {
	Frequency RecurrenceFrequency
	Until     time.Time
}
