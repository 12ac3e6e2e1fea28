package staffdirectory

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("staffdirectory client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("staffdirectory client: invalid response")

	// ErrServiceDegraded возвращается, когда справочник персонала недоступен.
	// Расчёт доступности без расписаний невозможен, вызывающий код должен
	// отвечать временной недоступностью, а не отказом в бронировании.
	ErrServiceDegraded = errors.New("staffdirectory unavailable: graceful degradation applied")
)
