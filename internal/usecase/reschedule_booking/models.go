package reschedule_booking

import (
	"time"

	"github.com/m04kA/SBP-SchedulingService/pkg/types"
)

// Request модель запроса на перенос бронирования.
// Указывается любое подмножество новых значений, остальные берутся из
// существующего бронирования.
type Request struct {
	BookingID    int64             // ID переносимого бронирования
	CallerID     string            // ID вызывающего (для проверки прав доступа)
	NewStaffID   *string           // Новый сотрудник (опционально)
	NewDate      *time.Time        // Новая дата (опционально)
	NewStartTime *types.TimeString // Новое время начала (опционально)
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID              int64            // ID бронирования
	CustomerID      string           // ID клиента
	StaffID         string           // ID сотрудника после переноса
	ServiceID       string           // ID услуги
	BookingDate     time.Time        // Дата после переноса
	StartTime       types.TimeString // Время начала после переноса
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования (перенос его не меняет)
	SeriesID        *string          // ID серии, связь с серией сохраняется

	// Денормализованные данные
	CustomerName string  // Имя клиента
	StaffName    string  // Имя сотрудника после переноса
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
