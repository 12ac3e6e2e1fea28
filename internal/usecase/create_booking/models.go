package create_booking

import (
	"time"

	"github.com/m04kA/SBP-SchedulingService/pkg/types"
)

// Recurrence правило повторения для серии бронирований
type Recurrence struct {
	Frequency string    // Частота повторения: weekly или monthly
	Until     time.Time // Дата последнего возможного вхождения (включительно)
}

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID string           // ID клиента
	StaffID    string           // ID сотрудника
	ServiceID  string           // ID услуги
	Date       time.Time        // Дата бронирования (без времени)
	StartTime  types.TimeString // Время начала (например, "10:00")
	Notes      *string          // Дополнительные заметки (опционально)
	Recurrence *Recurrence      // nil для разового бронирования
}

// BookingResult данные созданного бронирования
type BookingResult struct {
	ID              int64            // ID созданного бронирования
	CustomerID      string           // ID клиента
	StaffID         string           // ID сотрудника
	ServiceID       string           // ID услуги
	BookingDate     time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования
	SeriesID        *string          // ID серии для повторяющихся бронирований

	// Денормализованные данные на момент создания
	CustomerName string  // Имя клиента
	StaffName    string  // Имя сотрудника
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

// RejectedOccurrence отклонённое вхождение серии
type RejectedOccurrence struct {
	Date   time.Time // Дата отклонённого вхождения
	Reason string    // Машиночитаемая причина отклонения
}

// Response модель ответа с созданными бронированиями.
// Для разового запроса Bookings содержит ровно один элемент, Rejected пуст.
type Response struct {
	Bookings []BookingResult      // Созданные бронирования в хронологическом порядке
	Rejected []RejectedOccurrence // Отклонённые вхождения серии с причинами
	SeriesID *string              // ID серии, если запрос был повторяющимся
}
