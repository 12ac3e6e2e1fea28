package scheduling

import "errors"

var (
	// ErrOutsideWorkingHours возвращается, когда интервал выходит за рабочие часы сотрудника
	ErrOutsideWorkingHours = errors.New("slot is outside working hours")

	// ErrStaffOnTimeOff возвращается, когда интервал пересекается с отгулом сотрудника
	ErrStaffOnTimeOff = errors.New("staff is on time off")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующим бронированием
	ErrSlotConflict = errors.New("slot conflicts with an existing booking")

	// ErrInvalidRecurrence возвращается при некорректном правиле повторения
	ErrInvalidRecurrence = errors.New("invalid recurrence rule")
)

// IsRejection определяет, является ли ошибка бизнес-отказом проверки слота,
// а не внутренней ошибкой
func IsRejection(err error) bool {
	return errors.Is(err, ErrOutsideWorkingHours) ||
		errors.Is(err, ErrStaffOnTimeOff) ||
		errors.Is(err, ErrSlotConflict)
}
