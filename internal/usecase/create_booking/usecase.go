package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	customerClient "github.com/m04kA/SBP-SchedulingService/internal/integrations/customerdirectory"
	staffClient "github.com/m04kA/SBP-SchedulingService/internal/integrations/staffdirectory"
	"github.com/m04kA/SBP-SchedulingService/internal/scheduling"
	"github.com/m04kA/SBP-SchedulingService/pkg/metrics"
)

// UseCase use case для создания бронирования, разового или серии
type UseCase struct {
	bookingRepo    BookingRepository
	timeOffRepo    TimeOffRepository
	staffClient    StaffDirectoryClient
	customerClient CustomerDirectoryClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	location       *time.Location
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	timeOffRepo TimeOffRepository,
	staffDirectory StaffDirectoryClient,
	customerDirectory CustomerDirectoryClient,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		timeOffRepo:    timeOffRepo,
		staffClient:    staffDirectory,
		customerClient: customerDirectory,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		location:       location,
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования.
// Каждое вхождение проверяется и сохраняется в собственной сериализуемой
// транзакции строго в хронологическом порядке, поэтому ранние вхождения серии
// учитываются как существующие бронирования при проверке поздних.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%s, staff=%s, service=%s, date=%s, time=%s, recurring=%t",
		req.CustomerID, req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime, req.Recurrence != nil)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что дата не в прошлом (по календарю бизнеса)
	now := uc.timeProvider.Now()
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.location)
	if err := validateDate(date, now, uc.location); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем сотрудника из справочника
	staff, err := uc.staffClient.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffClient.ErrStaffNotFound) {
			uc.logger.Warn("CreateBooking: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		if errors.Is(err, staffClient.ErrServiceDegraded) {
			uc.logger.Error("CreateBooking: staff directory unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
		}
		uc.logger.Error("CreateBooking: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if !staff.IsActive {
		uc.logger.Warn("CreateBooking: staff id=%s is inactive", req.StaffID)
		return nil, ErrStaffInactive
	}

	// 4. Получаем услугу из справочника
	service, err := uc.staffClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, staffClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		if errors.Is(err, staffClient.ErrServiceDegraded) {
			uc.logger.Error("CreateBooking: staff directory unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
		}
		uc.logger.Error("CreateBooking: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Проверяем, что сотрудник оказывает услугу
	if !service.IsServedBy(req.StaffID) {
		uc.logger.Warn("CreateBooking: service id=%s is not provided by staff id=%s", req.ServiceID, req.StaffID)
		return nil, ErrServiceNotProvidedByStaff
	}

	// 6. Получаем клиента. Недоступность справочника клиентов не блокирует запись,
	// в этом случае бронирование создается без денормализованного имени.
	customerName := ""
	customer, err := uc.customerClient.GetCustomerWithGracefulDegradation(ctx, req.CustomerID)
	switch {
	case err == nil:
		customerName = customer.FullName
	case errors.Is(err, customerClient.ErrCustomerNotFound):
		uc.logger.Warn("CreateBooking: customer id=%s not found", req.CustomerID)
		return nil, ErrCustomerNotFound
	case errors.Is(err, customerClient.ErrServiceDegraded):
		uc.logger.Warn("CreateBooking: customer directory degraded, booking without customer name: %v", err)
	default:
		uc.logger.Error("CreateBooking: failed to get customer id=%s: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	// 7. Развертываем даты вхождений
	occurrences := []time.Time{date}
	var seriesID *string

	if req.Recurrence != nil {
		rule := domain.RecurrenceRule{
			Frequency: domain.RecurrenceFrequency(req.Recurrence.Frequency),
			Until:     req.Recurrence.Until,
		}

		occurrences, err = scheduling.ExpandOccurrences(date, rule, uc.location)
		if err != nil {
			uc.logger.Warn("CreateBooking: recurrence expansion failed: %v", err)
			return nil, err
		}

		id := uuid.NewString()
		seriesID = &id
		metrics.OccurrencesExpanded.Add(float64(len(occurrences)))

		uc.logger.Info("CreateBooking: series %s expanded to %d occurrences", id, len(occurrences))
	}

	// 8. Бронируем вхождения в хронологическом порядке, каждое в своей транзакции
	schedule := staff.Schedule.ToDomain()
	created := make([]BookingResult, 0, len(occurrences))
	rejected := make([]RejectedOccurrence, 0)

	for _, occurrence := range occurrences {
		booking, err := uc.bookOccurrence(ctx, req, staff, service, customerName, seriesID, schedule, occurrence)
		if err != nil {
			if !scheduling.IsRejection(err) {
				return nil, err
			}

			reason := rejectionReason(err)
			metrics.BookingsRejected.WithLabelValues(reason).Inc()

			// Разовый запрос: отказ проверки и есть результат
			if req.Recurrence == nil {
				uc.logger.Warn("CreateBooking: slot rejected: %v", err)
				return nil, err
			}

			uc.logger.Warn("CreateBooking: occurrence %s rejected: %v", occurrence.Format(domain.DateFormat), err)
			rejected = append(rejected, RejectedOccurrence{Date: occurrence, Reason: reason})
			continue
		}

		metrics.BookingsCreated.Inc()
		created = append(created, toBookingResult(booking))
	}

	// 9. Серия, в которой не прошло ни одно вхождение, считается неуспешной
	if len(created) == 0 {
		uc.logger.Warn("CreateBooking: all %d occurrences rejected", len(rejected))
		return nil, fmt.Errorf("%w: %d occurrences rejected", ErrNoAvailableOccurrences, len(rejected))
	}

	uc.logger.Info("CreateBooking: created %d bookings, rejected %d occurrences", len(created), len(rejected))

	return &Response{
		Bookings: created,
		Rejected: rejected,
		SeriesID: seriesID,
	}, nil
}

// bookOccurrence проверяет и сохраняет одно вхождение в сериализуемой транзакции.
// Чтение бронирований внутри транзакции блокирует строки сотрудника на дату
// (FOR UPDATE), поэтому конкурентные попытки занять слот исполняются по очереди.
func (uc *UseCase) bookOccurrence(
	ctx context.Context,
	req *Request,
	staff *staffClient.Staff,
	service *staffClient.Service,
	customerName string,
	seriesID *string,
	schedule domain.WeeklySchedule,
	date time.Time,
) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Отгулы сотрудника и общие блокировки, пересекающие дату
		bounds := domain.DayBounds(date, uc.location)
		timeOffs, err := uc.timeOffRepo.ListApplicableToStaff(txCtx, req.StaffID, bounds.Start, bounds.End)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get time off for staff id=%s: %v", req.StaffID, err)
			return fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
		}

		// 2. Активные бронирования сотрудника на дату с блокировкой строк
		filter := domain.BookingsFilter{
			StaffID:         &req.StaffID,
			StartDate:       &date,
			EndDate:         &date,
			IncludeInactive: false,
		}

		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings for staff id=%s: %v", req.StaffID, err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 3. Проверяем кандидата: рабочие часы, затем отгулы, затем пересечения
		candidate := scheduling.Candidate{
			StaffID:         req.StaffID,
			Date:            date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
		}

		day := schedule.ForWeekday(date.Weekday())
		if err := scheduling.ValidateCandidate(candidate, day, uc.location, timeOffs, bookings); err != nil {
			return err
		}

		// 4. Создаем бронирование с денормализацией данных справочников
		booking := &domain.Booking{
			CustomerID:      req.CustomerID,
			StaffID:         req.StaffID,
			ServiceID:       req.ServiceID,
			BookingDate:     date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusPending,
			SeriesID:        seriesID,
			CustomerName:    customerName,
			StaffName:       staff.FullName,
			ServiceName:     service.Name,
			ServicePrice:    service.BasePrice(),
			Notes:           req.Notes,
		}

		createdBooking, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = createdBooking
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// toBookingResult конвертирует доменную модель в результат use case
func toBookingResult(booking *domain.Booking) BookingResult {
	return BookingResult{
		ID:              booking.ID,
		CustomerID:      booking.CustomerID,
		StaffID:         booking.StaffID,
		ServiceID:       booking.ServiceID,
		BookingDate:     booking.BookingDate,
		StartTime:       booking.StartTime,
		DurationMinutes: booking.DurationMinutes,
		Status:          string(booking.Status),
		SeriesID:        booking.SeriesID,
		CustomerName:    booking.CustomerName,
		StaffName:       booking.StaffName,
		ServiceName:     booking.ServiceName,
		ServicePrice:    booking.ServicePrice,
		Notes:           booking.Notes,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}
}

// rejectionReason возвращает машиночитаемую причину отказа проверки слота
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, scheduling.ErrOutsideWorkingHours):
		return "outside_working_hours"
	case errors.Is(err, scheduling.ErrStaffOnTimeOff):
		return "staff_on_time_off"
	case errors.Is(err, scheduling.ErrSlotConflict):
		return "slot_conflict"
	default:
		return "rejected"
	}
}
