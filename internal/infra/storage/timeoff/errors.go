package timeoff

import "errors"

var (
	// ErrTimeOffNotFound возвращается, когда отгул не найден
	ErrTimeOffNotFound = errors.New("timeoff.repository: time off not found")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("timeoff.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("timeoff.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("timeoff.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("timeoff.repository: failed to scan row")

	// ErrInvalidInterval возвращается, когда границы отгула заданы некорректно
	ErrInvalidInterval = errors.New("timeoff.repository: invalid time off interval")
)
