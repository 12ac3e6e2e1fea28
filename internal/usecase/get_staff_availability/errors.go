package get_staff_availability

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден в справочнике
	ErrStaffNotFound = errors.New("get_staff_availability: staff member not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в справочнике
	ErrServiceNotFound = errors.New("get_staff_availability: service not found")

	// ErrServiceNotProvidedByStaff возвращается, когда сотрудник не оказывает указанную услугу
	ErrServiceNotProvidedByStaff = errors.New("get_staff_availability: service is not provided by this staff member")

	// ErrDirectoryUnavailable возвращается, когда справочник сотрудников недоступен
	ErrDirectoryUnavailable = errors.New("get_staff_availability: staff directory is unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_staff_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_staff_availability: internal error")
)
