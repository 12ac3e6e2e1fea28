package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у вызывающего нет прав на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается при попытке отменить завершенное бронирование
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrDirectoryUnavailable возвращается, когда справочник сотрудников недоступен
	ErrDirectoryUnavailable = errors.New("staff directory is unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
