package get_staff_availability

import (
	"time"

	"github.com/m04kA/SBP-SchedulingService/pkg/types"
)

// Request модель запроса доступных слотов сотрудника
type Request struct {
	StaffID   string    // ID сотрудника
	ServiceID string    // ID услуги (определяет длительность слота)
	Date      time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	StaffID         string             // ID сотрудника
	ServiceID       string             // ID услуги
	Date            time.Time          // Дата, на которую запрашивались слоты
	DurationMinutes int                // Длительность услуги в минутах
	Slots           []types.TimeString // Времена начала свободных слотов по возрастанию
}
