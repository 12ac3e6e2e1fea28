package get_combined_availability

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в справочнике
	ErrServiceNotFound = errors.New("get_combined_availability: service not found")

	// ErrDirectoryUnavailable возвращается, когда справочник сотрудников недоступен
	ErrDirectoryUnavailable = errors.New("get_combined_availability: staff directory is unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_combined_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_combined_availability: internal error")
)
