package models

import (
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
)

// Request модели

// CreateTimeOffRequest запрос на создание отгула.
// StaffID "all" означает блокировку всех сотрудников (выходной, праздник).
type CreateTimeOffRequest struct {
	CallerID string    `json:"-"`
	StaffID  string    `json:"staffId"`
	StartAt  time.Time `json:"startAt"`
	EndAt    time.Time `json:"endAt"`
	Reason   *string   `json:"reason,omitempty"`
}

// ListTimeOffRequest запрос на получение списка отгулов
type ListTimeOffRequest struct {
	CallerID string     `json:"-"`
	StaffID  *string    `json:"staffId,omitempty"` // Фильтр по сотруднику, учитывает записи "all"
	From     *time.Time `json:"from,omitempty"`    // Начало периода
	To       *time.Time `json:"to,omitempty"`      // Конец периода
}

// DeleteTimeOffRequest запрос на удаление отгула
type DeleteTimeOffRequest struct {
	CallerID string `json:"-"`
}

// Response модели

// TimeOffResponse ответ с данными отгула
type TimeOffResponse struct {
	ID        int64     `json:"id"`
	StaffID   string    `json:"staffId"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TimeOffListResponse ответ со списком отгулов
type TimeOffListResponse struct {
	TimeOffs []TimeOffResponse `json:"timeOffs"`
}

// Методы конвертации

// FromDomainTimeOff конвертирует domain модель в DTO
func FromDomainTimeOff(t *domain.TimeOff) *TimeOffResponse {
	if t == nil {
		return nil
	}

	return &TimeOffResponse{
		ID:        t.ID,
		StaffID:   t.StaffID,
		StartAt:   t.StartAt,
		EndAt:     t.EndAt,
		Reason:    t.Reason,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// FromDomainTimeOffList конвертирует список domain моделей в DTO
func FromDomainTimeOffList(timeOffs []*domain.TimeOff) *TimeOffListResponse {
	if timeOffs == nil {
		return &TimeOffListResponse{
			TimeOffs: []TimeOffResponse{},
		}
	}

	resp := &TimeOffListResponse{
		TimeOffs: make([]TimeOffResponse, len(timeOffs)),
	}

	for i, timeOff := range timeOffs {
		if timeOffResp := FromDomainTimeOff(timeOff); timeOffResp != nil {
			resp.TimeOffs[i] = *timeOffResp
		}
	}

	return resp
}

// ToDomainTimeOff конвертирует CreateTimeOffRequest в domain модель
func (r *CreateTimeOffRequest) ToDomainTimeOff() *domain.TimeOff {
	return &domain.TimeOff{
		StaffID: r.StaffID,
		StartAt: r.StartAt,
		EndAt:   r.EndAt,
		Reason:  r.Reason,
	}
}

// ToDomainFilter конвертирует ListTimeOffRequest в фильтр выборки
func (r *ListTimeOffRequest) ToDomainFilter() domain.TimeOffFilter {
	return domain.TimeOffFilter{
		StaffID: r.StaffID,
		From:    r.From,
		To:      r.To,
	}
}
