package domain

import (
	"time"

	"github.com/m04kA/SBP-SchedulingService/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// lifecycleTransitions defines the allowed status transitions.
// Completed and cancelled are terminal.
var lifecycleTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// IsValid returns true if the status is one of the known lifecycle statuses
func (s BookingStatus) IsValid() bool {
	_, ok := lifecycleTransitions[s]
	return ok
}

// CanTransitionTo returns true if the lifecycle allows moving to next
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	allowed, ok := lifecycleTransitions[s]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == next {
			return true
		}
	}
	return false
}

// IsOccupying returns true if a booking in this status blocks its time slot
func (s BookingStatus) IsOccupying() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCompleted
}

// Booking represents an appointment of a customer with a staff member
type Booking struct {
	ID              int64
	CustomerID      string
	StaffID         string
	ServiceID       string
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// SeriesID links occurrences created by one recurring request
	SeriesID *string

	// TransactionID is set when payment closes the visit
	TransactionID *string

	// Denormalized data for history
	CustomerName string
	StaffName    string
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOccupying returns true if the booking blocks its time slot
func (b *Booking) IsOccupying() bool {
	return b.Status.IsOccupying()
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// CanBeRescheduled returns true if the booking interval can still be moved
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// EndTime returns the end of the booking interval
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// Interval returns the booking interval anchored to its date in loc
func (b *Booking) Interval(loc *time.Location) (Interval, error) {
	return NewInterval(b.BookingDate, b.StartTime, b.DurationMinutes, loc)
}

// BookingsFilter фильтр для выборки бронирований.
// StaffID nil означает бронирования всех сотрудников.
type BookingsFilter struct {
	StaffID         *string
	CustomerID      *string
	StartDate       *time.Time     // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time     // Конец периода (опционально, если nil - без ограничения)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные бронирования
	ExcludeID       *int64         // Исключить бронирование по ID (для переноса)
}
