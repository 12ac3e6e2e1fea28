package create_booking

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден в справочнике
	ErrStaffNotFound = errors.New("create_booking: staff member not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в справочнике
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrCustomerNotFound возвращается, когда клиент не найден в справочнике
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrServiceNotProvidedByStaff возвращается, когда сотрудник не оказывает указанную услугу
	ErrServiceNotProvidedByStaff = errors.New("create_booking: service is not provided by this staff member")

	// ErrStaffInactive возвращается при попытке записи к неактивному сотруднику
	ErrStaffInactive = errors.New("create_booking: staff member is inactive")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: booking date is in the past")

	// ErrNoAvailableOccurrences возвращается, когда отклонены все вхождения серии
	ErrNoAvailableOccurrences = errors.New("create_booking: no occurrence of the series could be booked")

	// ErrDirectoryUnavailable возвращается, когда справочник недоступен
	ErrDirectoryUnavailable = errors.New("create_booking: directory is unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
