package reschedule_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	rescheduleBooking "github.com/m04kA/SBP-SchedulingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SBP-SchedulingService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date format")
	errInvalidTime = errors.New("invalid time format")
)

// RescheduleBookingRequest HTTP request model.
// Указывается любое подмножество новых значений.
type RescheduleBookingRequest struct {
	NewStaffID     *string `json:"newStaffId,omitempty"`
	NewBookingDate *string `json:"newBookingDate,omitempty"`
	NewStartTime   *string `json:"newStartTime,omitempty"`
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
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
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleBookingRequest) ToUseCaseRequest(bookingID int64, callerID string) (*rescheduleBooking.Request, error) {
	req := &rescheduleBooking.Request{
		BookingID:  bookingID,
		CallerID:   callerID,
		NewStaffID: r.NewStaffID,
	}

	if r.NewBookingDate != nil {
		date, err := time.Parse(domain.DateFormat, *r.NewBookingDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
		}
		req.NewDate = &date
	}

	if r.NewStartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.NewStartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
		}
		req.NewStartTime = &startTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	result := &RescheduleBookingResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		StaffID:         resp.StaffID,
		ServiceID:       resp.ServiceID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		SeriesID:        resp.SeriesID,
		CustomerName:    resp.CustomerName,
		StaffName:       resp.StaffName,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}

	if end, err := resp.StartTime.AddMinutes(resp.DurationMinutes); err == nil {
		result.EndTime = end.String()
	}

	return result
}
