package timeoff

import "errors"

var (
	// ErrTimeOffNotFound возвращается, когда запись об отгуле не найдена
	ErrTimeOffNotFound = errors.New("time off not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден в справочнике
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrAccessDenied возвращается, когда у вызывающего нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrDirectoryUnavailable возвращается, когда справочник сотрудников недоступен
	ErrDirectoryUnavailable = errors.New("staff directory unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
