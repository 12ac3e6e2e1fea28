package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrBookingNotReschedulable возвращается для завершенных и отмененных бронирований
	ErrBookingNotReschedulable = errors.New("reschedule_booking: booking can not be rescheduled in its current status")

	// ErrAccessDenied возвращается, когда вызывающий не имеет прав на перенос бронирования
	ErrAccessDenied = errors.New("reschedule_booking: access denied")

	// ErrStaffNotFound возвращается, когда целевой сотрудник не найден в справочнике
	ErrStaffNotFound = errors.New("reschedule_booking: staff member not found")

	// ErrServiceNotFound возвращается, когда услуга бронирования не найдена в справочнике
	ErrServiceNotFound = errors.New("reschedule_booking: service not found")

	// ErrServiceNotProvidedByStaff возвращается, когда целевой сотрудник не оказывает услугу
	ErrServiceNotProvidedByStaff = errors.New("reschedule_booking: service is not provided by the target staff member")

	// ErrStaffInactive возвращается при попытке переноса к неактивному сотруднику
	ErrStaffInactive = errors.New("reschedule_booking: staff member is inactive")

	// ErrInvalidDate возвращается, когда целевая дата в прошлом
	ErrInvalidDate = errors.New("reschedule_booking: target date is in the past")

	// ErrDirectoryUnavailable возвращается, когда справочник недоступен
	ErrDirectoryUnavailable = errors.New("reschedule_booking: directory is unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
