package get_combined_availability

import (
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
)

// Request модель запроса сводной доступности по услуге
type Request struct {
	ServiceID string    // ID услуги
	Date      time.Time // Дата, на которую запрашивается доступность
}

// Response модель ответа со сводной доступностью
type Response struct {
	ServiceID       string                      // ID услуги
	Date            time.Time                   // Дата, на которую запрашивалась доступность
	DurationMinutes int                         // Длительность услуги в минутах
	Slots           domain.CombinedAvailability // Время начала -> отсортированные ID свободных сотрудников
}
