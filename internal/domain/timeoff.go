package domain

import "time"

// TimeOff represents a period during which a staff member is unavailable.
// StaffID set to StaffScopeAll blocks every staff member, e.g. a holiday.
type TimeOff struct {
	ID      int64
	StaffID string
	StartAt time.Time
	EndAt   time.Time
	Reason  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesTo returns true if the time off blocks the given staff member
func (t *TimeOff) AppliesTo(staffID string) bool {
	return t.StaffID == StaffScopeAll || t.StaffID == staffID
}

// IsBusinessWide returns true if the time off blocks all staff members
func (t *TimeOff) IsBusinessWide() bool {
	return t.StaffID == StaffScopeAll
}

// Interval returns the blocked period as a half-open interval
func (t *TimeOff) Interval() Interval {
	return Interval{Start: t.StartAt, End: t.EndAt}
}

// TimeOffFilter фильтр для выборки отгулов
type TimeOffFilter struct {
	StaffID *string    // Фильтр по сотруднику (опционально, учитывает записи StaffScopeAll)
	From    *time.Time // Начало периода (опционально)
	To      *time.Time // Конец периода (опционально)
}
