package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	createBooking "github.com/m04kA/SBP-SchedulingService/internal/usecase/create_booking"
	"github.com/m04kA/SBP-SchedulingService/pkg/types"
)

var (
	errInvalidDate              = errors.New("invalid date format")
	errInvalidTime              = errors.New("invalid time format")
	errInvalidRecurrenceEndDate = errors.New("invalid recurrence end date format")
)

// CreateBookingRequest HTTP request model.
// CustomerID опционален, по умолчанию бронирование создается на вызывающего.
type CreateBookingRequest struct {
	CustomerID        *string `json:"customerId,omitempty"`
	StaffID           string  `json:"staffId"`
	ServiceID         string  `json:"serviceId"`
	Date              string  `json:"date"`
	Time              string  `json:"time"`
	Notes             *string `json:"notes,omitempty"`
	RecurrenceRule    *string `json:"recurrenceRule,omitempty"`
	RecurrenceEndDate *string `json:"recurrenceEndDate,omitempty"`
}

// BookingResultResponse данные одного созданного бронирования
type BookingResultResponse struct {
	ID              int64     `json:"id"`
	CustomerID      string    `json:"customerId"`
	StaffID         string    `json:"staffId"`
	ServiceID       string    `json:"serviceId"`
	BookingDate     string    `json:"bookingDate"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	SeriesID        *string   `json:"seriesId,omitempty"`
	CustomerName    string    `json:"customerName"`
	StaffName       string    `json:"staffName"`
	ServiceName     string    `json:"serviceName"`
	ServicePrice    float64   `json:"servicePrice"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// RejectedOccurrenceResponse отклоненное вхождение серии
type RejectedOccurrenceResponse struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Bookings []BookingResultResponse      `json:"bookings"`
	Rejected []RejectedOccurrenceResponse `json:"rejected"`
	SeriesID *string                      `json:"seriesId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// callerID используется как ID клиента, если customerId не передан.
func (r *CreateBookingRequest) ToUseCaseRequest(callerID string) (*createBooking.Request, error) {
	customerID := callerID
	if r.CustomerID != nil && *r.CustomerID != "" {
		customerID = *r.CustomerID
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	var recurrence *createBooking.Recurrence
	if r.RecurrenceRule != nil {
		recurrence = &createBooking.Recurrence{Frequency: *r.RecurrenceRule}
		if r.RecurrenceEndDate != nil {
			until, err := time.Parse(domain.DateFormat, *r.RecurrenceEndDate)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", errInvalidRecurrenceEndDate, err)
			}
			recurrence.Until = until
		}
		// Отсутствующая дата окончания отклоняется правилами повторения
	}

	return &createBooking.Request{
		CustomerID: customerID,
		StaffID:    r.StaffID,
		ServiceID:  r.ServiceID,
		Date:       date,
		StartTime:  startTime,
		Notes:      r.Notes,
		Recurrence: recurrence,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	bookings := make([]BookingResultResponse, len(resp.Bookings))
	for i, b := range resp.Bookings {
		bookings[i] = fromBookingResult(b)
	}

	rejected := make([]RejectedOccurrenceResponse, len(resp.Rejected))
	for i, r := range resp.Rejected {
		rejected[i] = RejectedOccurrenceResponse{
			Date:   r.Date.Format(domain.DateFormat),
			Reason: r.Reason,
		}
	}

	return &CreateBookingResponse{
		Bookings: bookings,
		Rejected: rejected,
		SeriesID: resp.SeriesID,
	}
}

func fromBookingResult(b createBooking.BookingResult) BookingResultResponse {
	result := BookingResultResponse{
		ID:              b.ID,
		CustomerID:      b.CustomerID,
		StaffID:         b.StaffID,
		ServiceID:       b.ServiceID,
		BookingDate:     b.BookingDate.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          b.Status,
		SeriesID:        b.SeriesID,
		CustomerName:    b.CustomerName,
		StaffName:       b.StaffName,
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice,
		Notes:           b.Notes,
		CreatedAt:       b.CreatedAt,
	}

	if end, err := b.StartTime.AddMinutes(b.DurationMinutes); err == nil {
		result.EndTime = end.String()
	}

	return result
}
