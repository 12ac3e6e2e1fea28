package scheduling

import (
	"fmt"
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
)

// ExpandOccurrences разворачивает правило повторения в последовательность дат
// серии, начиная с базовой даты (она всегда первая). Для weekly шаг равен 7
// дням. Для monthly каждая дата - это базовая дата, сдвинутая на k календарных
// месяцев с сохранением дня месяца; если в целевом месяце меньше дней, дата
// прижимается к последнему дню месяца. Генерация останавливается, когда дата
// превышает rule.Until (включительная граница).
//
// base и rule.Until интерпретируются как календарные даты, время суток
// игнорируется. Результат возвращается в хронологическом порядке.
func ExpandOccurrences(base time.Time, rule domain.RecurrenceRule, loc *time.Location) ([]time.Time, error) {
	if !rule.Frequency.IsValid() {
		return nil, fmt.Errorf("%w: unsupported frequency %q", ErrInvalidRecurrence, rule.Frequency)
	}
	if rule.Until.IsZero() {
		return nil, fmt.Errorf("%w: end date is required", ErrInvalidRecurrence)
	}

	baseDate := truncateToDate(base, loc)
	until := truncateToDate(rule.Until, loc)

	if until.Before(baseDate) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidRecurrence, until.Format(domain.DateFormat), baseDate.Format(domain.DateFormat))
	}

	occurrences := []time.Time{baseDate}

	for k := 1; ; k++ {
		var next time.Time
		switch rule.Frequency {
		case domain.FrequencyWeekly:
			next = baseDate.AddDate(0, 0, 7*k)
		case domain.FrequencyMonthly:
			next = monthlyOccurrence(baseDate, k, loc)
		}

		if next.After(until) {
			break
		}

		occurrences = append(occurrences, next)
		if len(occurrences) > domain.MaxRecurrenceOccurrences {
			return nil, fmt.Errorf("%w: series exceeds %d occurrences",
				ErrInvalidRecurrence, domain.MaxRecurrenceOccurrences)
		}
	}

	return occurrences, nil
}

// monthlyOccurrence возвращает базовую дату, сдвинутую на months календарных
// месяцев. День месяца сохраняется от базовой даты, а не от предыдущей
// сгенерированной: 31 января даёт 28 февраля и затем снова 31 марта.
func monthlyOccurrence(base time.Time, months int, loc *time.Location) time.Time {
	year := base.Year()
	month := base.Month() + time.Month(months)

	day := base.Day()
	if last := lastDayOfMonth(year, month, loc); day > last {
		day = last
	}

	// time.Date нормализует переполнение месяца в следующие годы
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// lastDayOfMonth возвращает число последнего дня указанного месяца
func lastDayOfMonth(year int, month time.Month, loc *time.Location) int {
	// Нулевой день следующего месяца - это последний день текущего
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// truncateToDate обнуляет время суток, оставляя только календарную дату
func truncateToDate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
