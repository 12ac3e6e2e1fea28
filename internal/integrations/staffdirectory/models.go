package staffdirectory

import (
	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	"github.com/m04kA/SBP-SchedulingService/pkg/types"
)

// RoleManager роль администратора филиала в справочнике персонала
const RoleManager = "manager"

// Staff модель сотрудника из справочника персонала
type Staff struct {
	ID       string       `json:"id"`
	FullName string       `json:"full_name"`
	Role     string       `json:"role"`
	IsActive bool         `json:"is_active"`
	Schedule WeekSchedule `json:"schedule"`
}

// DaySchedule расписание сотрудника на один день недели
type DaySchedule struct {
	IsWorking bool    `json:"is_working"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
}

// WeekSchedule недельное расписание сотрудника
type WeekSchedule struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// Service модель услуги из справочника персонала
// Пустой StaffIDs означает, что услугу оказывает любой сотрудник
type Service struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
	StaffIDs        []string `json:"staff_ids"`
	IsActive        bool     `json:"is_active"`
}

// ErrorResponse модель ошибки от справочника персонала
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует недельное расписание в доменную модель
func (w WeekSchedule) ToDomain() domain.WeeklySchedule {
	return domain.WeeklySchedule{
		Monday:    w.Monday.toDomain(),
		Tuesday:   w.Tuesday.toDomain(),
		Wednesday: w.Wednesday.toDomain(),
		Thursday:  w.Thursday.toDomain(),
		Friday:    w.Friday.toDomain(),
		Saturday:  w.Saturday.toDomain(),
		Sunday:    w.Sunday.toDomain(),
	}
}

func (d DaySchedule) toDomain() domain.DaySchedule {
	// День без указанных границ считается выходным
	if !d.IsWorking || d.StartTime == nil || d.EndTime == nil {
		return domain.DaySchedule{IsWorking: false}
	}
	return domain.DaySchedule{
		IsWorking: true,
		StartTime: types.TimeString(*d.StartTime),
		EndTime:   types.TimeString(*d.EndTime),
	}
}

// IsManager проверяет, что сотрудник имеет права администратора
func (s *Staff) IsManager() bool {
	return s.Role == RoleManager
}

// IsServedBy проверяет, что сотрудник оказывает услугу.
// Пустой список сотрудников услуги означает, что подходит любой.
func (s *Service) IsServedBy(staffID string) bool {
	if len(s.StaffIDs) == 0 {
		return true
	}
	for _, id := range s.StaffIDs {
		if id == staffID {
			return true
		}
	}
	return false
}

// BasePrice возвращает цену услуги, 0 если цена не задана
func (s *Service) BasePrice() float64 {
	if s.Price == nil {
		return 0
	}
	return *s.Price
}
