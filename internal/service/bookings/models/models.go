package models

import (
	"errors"
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CallerID string `json:"callerId"`
	Reason   string `json:"reason"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	CallerID      string  `json:"callerId"`
	Status        string  `json:"status"`
	TransactionID *string `json:"transactionId,omitempty"` // Ссылка на оплату, только для completed
}

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID string  `json:"customerId"`
	CallerID   string  `json:"callerId"`
	Status     *string `json:"status,omitempty"`
}

// GetStaffDayRequest запрос на дневной календарь сотрудника
type GetStaffDayRequest struct {
	StaffID         string    `json:"staffId"`
	CallerID        string    `json:"callerId"`
	Date            time.Time `json:"date"`
	IncludeInactive bool      `json:"includeInactive,omitempty"` // Включить отмененные бронирования
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	CustomerID      string  `json:"customerId"`
	StaffID         string  `json:"staffId"`
	ServiceID       string  `json:"serviceId"`
	BookingDate     string  `json:"bookingDate"` // "2025-10-15"
	StartTime       string  `json:"startTime"`   // "10:00"
	EndTime         string  `json:"endTime"`     // "10:30"
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	SeriesID        *string `json:"seriesId,omitempty"`
	TransactionID   *string `json:"transactionId,omitempty"`

	// Денормализованные данные
	CustomerName string  `json:"customerName,omitempty"`
	StaffName    string  `json:"staffName,omitempty"`
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		StaffID:            b.StaffID,
		ServiceID:          b.ServiceID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		SeriesID:           b.SeriesID,
		TransactionID:      b.TransactionID,
		CustomerName:       b.CustomerName,
		StaffName:          b.StaffName,
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if end, err := b.EndTime(); err == nil {
		resp.EndTime = end.String()
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
