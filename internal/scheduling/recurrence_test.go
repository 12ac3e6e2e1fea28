package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
)

func dateUTC(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func occurrenceDates(occurrences []time.Time) []string {
	result := make([]string, len(occurrences))
	for i, occurrence := range occurrences {
		result[i] = occurrence.Format(domain.DateFormat)
	}
	return result
}

func TestExpandOccurrences_Weekly(t *testing.T) {
	rule := domain.RecurrenceRule{Frequency: domain.FrequencyWeekly, Until: dateUTC(2024, 6, 24)}

	occurrences, err := ExpandOccurrences(dateUTC(2024, 6, 3), rule, time.UTC)

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-03", "2024-06-10", "2024-06-17", "2024-06-24"}, occurrenceDates(occurrences))
}

func TestExpandOccurrences_WeeklyUntilBetweenOccurrences(t *testing.T) {
	// until попадает между повторениями: последнее повторение не позже until
	rule := domain.RecurrenceRule{Frequency: domain.FrequencyWeekly, Until: dateUTC(2024, 6, 23)}

	occurrences, err := ExpandOccurrences(dateUTC(2024, 6, 3), rule, time.UTC)

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-03", "2024-06-10", "2024-06-17"}, occurrenceDates(occurrences))
}

func TestExpandOccurrences_WeeklyCountMatchesFormula(t *testing.T) {
	base := dateUTC(2025, 1, 6)

	for _, days := range []int{0, 6, 7, 13, 14, 27, 28, 70} {
		until := base.AddDate(0, 0, days)
		rule := domain.RecurrenceRule{Frequency: domain.FrequencyWeekly, Until: until}

		occurrences, err := ExpandOccurrences(base, rule, time.UTC)

		require.NoError(t, err)
		assert.Len(t, occurrences, days/7+1, "until base+%d days", days)
	}
}

func TestExpandOccurrences_UntilEqualsBase(t *testing.T) {
	base := dateUTC(2025, 3, 5)
	rule := domain.RecurrenceRule{Frequency: domain.FrequencyWeekly, Until: base}

	occurrences, err := ExpandOccurrences(base, rule, time.UTC)

	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-05"}, occurrenceDates(occurrences))
}

func TestExpandOccurrences_Monthly(t *testing.T) {
	rule := domain.RecurrenceRule{Frequency: domain.FrequencyMonthly, Until: dateUTC(2025, 6, 15)}

	occurrences, err := ExpandOccurrences(dateUTC(2025, 3, 15), rule, time.UTC)

	require.NoError(t, err)
	assert.Equal(t, []string{"2025-03-15", "2025-04-15", "2025-05-15", "2025-06-15"}, occurrenceDates(occurrences))
}

func TestExpandOccurrences_MonthlyClampsToShorterMonth(t *testing.T) {
	rule := domain.RecurrenceRule{Frequency: domain.FrequencyMonthly, Until: dateUTC(2025, 5, 31)}

	occurrences, err := ExpandOccurrences(dateUTC(2025, 1, 31), rule, time.UTC)

	require.NoError(t, err)
	// День месяца сохраняется от базовой даты: после февраля серия возвращается на 31-е
	assert.Equal(t, []string{"2025-01-31", "2025-02-28", "2025-03-31", "2025-04-30", "2025-05-31"}, occurrenceDates(occurrences))
}

func TestExpandOccurrences_MonthlyClampLeapYear(t *testing.T) {
	rule := domain.RecurrenceRule{Frequency: domain.FrequencyMonthly, Until: dateUTC(2024, 3, 31)}

	occurrences, err := ExpandOccurrences(dateUTC(2024, 1, 31), rule, time.UTC)

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-31", "2024-02-29", "2024-03-31"}, occurrenceDates(occurrences))
}

func TestExpandOccurrences_MonthlyAcrossYearBoundary(t *testing.T) {
	rule := domain.RecurrenceRule{Frequency: domain.FrequencyMonthly, Until: dateUTC(2026, 1, 10)}

	occurrences, err := ExpandOccurrences(dateUTC(2025, 11, 10), rule, time.UTC)

	require.NoError(t, err)
	assert.Equal(t, []string{"2025-11-10", "2025-12-10", "2026-01-10"}, occurrenceDates(occurrences))
}

func TestExpandOccurrences_IgnoresTimeOfDay(t *testing.T) {
	base := time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC)
	rule := domain.RecurrenceRule{
		Frequency: domain.FrequencyWeekly,
		Until:     time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC),
	}

	occurrences, err := ExpandOccurrences(base, rule, time.UTC)

	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-02", "2025-06-09"}, occurrenceDates(occurrences))
}

func TestExpandOccurrences_InvalidRule(t *testing.T) {
	base := dateUTC(2025, 6, 2)

	tests := []struct {
		name string
		rule domain.RecurrenceRule
	}{
		{"unknown frequency", domain.RecurrenceRule{Frequency: "daily", Until: dateUTC(2025, 7, 1)}},
		{"missing end date", domain.RecurrenceRule{Frequency: domain.FrequencyWeekly}},
		{"end date before start", domain.RecurrenceRule{Frequency: domain.FrequencyWeekly, Until: dateUTC(2025, 5, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExpandOccurrences(base, tt.rule, time.UTC)
			assert.ErrorIs(t, err, ErrInvalidRecurrence)
		})
	}
}

func TestExpandOccurrences_SeriesCap(t *testing.T) {
	base := dateUTC(2025, 1, 6)

	// Ровно 52 повторения проходят
	atCap := domain.RecurrenceRule{Frequency: domain.FrequencyWeekly, Until: base.AddDate(0, 0, 7*51)}
	occurrences, err := ExpandOccurrences(base, atCap, time.UTC)
	require.NoError(t, err)
	assert.Len(t, occurrences, domain.MaxRecurrenceOccurrences)

	// 53 повторения превышают лимит серии
	overCap := domain.RecurrenceRule{Frequency: domain.FrequencyWeekly, Until: base.AddDate(0, 0, 7*52)}
	_, err = ExpandOccurrences(base, overCap, time.UTC)
	assert.ErrorIs(t, err, ErrInvalidRecurrence)
}
