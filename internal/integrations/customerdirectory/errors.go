package customerdirectory

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("customerdirectory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("customerdirectory client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что справочник клиентов недоступен и бронирование создаётся
	// без денормализованного имени клиента
	ErrServiceDegraded = errors.New("customerdirectory unavailable: graceful degradation applied")
)
