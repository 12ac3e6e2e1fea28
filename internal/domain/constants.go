package domain

// Slot grid constants
const (
	// SlotStepMinutes шаг сетки кандидатов, независимо от длительности услуги
	SlotStepMinutes = 15
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxTimeOffReasonLength      = 500

	// MaxRecurrenceOccurrences верхняя граница количества повторений в одной серии
	MaxRecurrenceOccurrences = 52 // 1 year of weekly occurrences
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// StaffScopeAll значение staff_id для отгулов, действующих на всех сотрудников
const StaffScopeAll = "all"

// OccupyingStatuses список статусов, при которых бронирование занимает слот.
// Используется для фильтрации при расчёте доступности и проверке конфликтов.
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// InactiveStatuses список статусов, при которых бронирование слот не занимает
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}
