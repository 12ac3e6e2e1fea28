package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	bookingStorage "github.com/m04kA/SBP-SchedulingService/internal/infra/storage/booking"
	staffClient "github.com/m04kA/SBP-SchedulingService/internal/integrations/staffdirectory"
	"github.com/m04kA/SBP-SchedulingService/internal/scheduling"
	"github.com/m04kA/SBP-SchedulingService/pkg/metrics"
)

// UseCase use case для переноса бронирования на другое время, дату или сотрудника
type UseCase struct {
	bookingRepo  BookingRepository
	timeOffRepo  TimeOffRepository
	staffClient  StaffDirectoryClient
	txManager    TransactionManager
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	timeOffRepo TimeOffRepository,
	staffDirectory StaffDirectoryClient,
	txManager TransactionManager,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		timeOffRepo:  timeOffRepo,
		staffClient:  staffDirectory,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// Execute выполняет use case переноса бронирования.
// Проверка и запись нового интервала выполняются в одной сериализуемой
// транзакции, собственная строка бронирования исключается из проверки
// пересечений, поэтому интервал заменяется атомарно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: booking=%d", req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingStorage.ErrBookingNotFound) {
			uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 4. Проверяем права доступа: клиент бронирования, его сотрудник или администратор
	if err := uc.checkAccess(ctx, booking, req.CallerID); err != nil {
		uc.logger.Warn("RescheduleBooking: access denied for caller=%s to booking id=%d", req.CallerID, req.BookingID)
		return nil, err
	}

	// 5. Переносить можно только ожидающие и подтвержденные бронирования
	if !booking.CanBeRescheduled() {
		uc.logger.Warn("RescheduleBooking: booking id=%d has status %s and can not be rescheduled",
			req.BookingID, booking.Status)
		return nil, ErrBookingNotReschedulable
	}

	// 6. Вычисляем целевые значения: незаданные поля берутся из бронирования
	targetStaffID := booking.StaffID
	if req.NewStaffID != nil {
		targetStaffID = *req.NewStaffID
	}

	targetDate := booking.BookingDate
	if req.NewDate != nil {
		targetDate = *req.NewDate
	}
	targetDate = time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 0, 0, 0, 0, uc.location)

	targetStart := booking.StartTime
	if req.NewStartTime != nil {
		targetStart = *req.NewStartTime
	}

	// 7. Проверяем, что целевая дата не в прошлом
	if err := validateDate(targetDate, now, uc.location); err != nil {
		uc.logger.Warn("RescheduleBooking: date validation failed: %v", err)
		return nil, err
	}

	// 8. Получаем целевого сотрудника из справочника
	staff, err := uc.staffClient.GetStaff(ctx, targetStaffID)
	if err != nil {
		if errors.Is(err, staffClient.ErrStaffNotFound) {
			uc.logger.Warn("RescheduleBooking: staff id=%s not found", targetStaffID)
			return nil, ErrStaffNotFound
		}
		if errors.Is(err, staffClient.ErrServiceDegraded) {
			uc.logger.Error("RescheduleBooking: staff directory unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
		}
		uc.logger.Error("RescheduleBooking: failed to get staff id=%s: %v", targetStaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if !staff.IsActive {
		uc.logger.Warn("RescheduleBooking: staff id=%s is inactive", targetStaffID)
		return nil, ErrStaffInactive
	}

	// 9. При смене сотрудника проверяем, что новый сотрудник оказывает услугу
	staffChanged := targetStaffID != booking.StaffID
	if staffChanged {
		service, err := uc.staffClient.GetService(ctx, booking.ServiceID)
		if err != nil {
			if errors.Is(err, staffClient.ErrServiceNotFound) {
				uc.logger.Warn("RescheduleBooking: service id=%s not found", booking.ServiceID)
				return nil, ErrServiceNotFound
			}
			if errors.Is(err, staffClient.ErrServiceDegraded) {
				uc.logger.Error("RescheduleBooking: staff directory unavailable: %v", err)
				return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
			}
			uc.logger.Error("RescheduleBooking: failed to get service id=%s: %v", booking.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}

		if !service.IsServedBy(targetStaffID) {
			uc.logger.Warn("RescheduleBooking: service id=%s is not provided by staff id=%s",
				booking.ServiceID, targetStaffID)
			return nil, ErrServiceNotProvidedByStaff
		}
	}

	// Имя сотрудника обновляется только при его смене, снимок остальных данных не трогаем
	targetStaffName := booking.StaffName
	if staffChanged {
		targetStaffName = staff.FullName
	}

	var result *domain.Booking

	// 10. Проверяем и записываем новый интервал в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 10.1. Перечитываем бронирование: статус мог измениться конкурентно
		fresh, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingStorage.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("RescheduleBooking: failed to re-read booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to re-read booking: %v", ErrInternal, err)
		}

		if !fresh.CanBeRescheduled() {
			uc.logger.Warn("RescheduleBooking: booking id=%d became %s during reschedule", req.BookingID, fresh.Status)
			return ErrBookingNotReschedulable
		}

		// 10.2. Отгулы целевого сотрудника и общие блокировки на целевую дату
		bounds := domain.DayBounds(targetDate, uc.location)
		timeOffs, err := uc.timeOffRepo.ListApplicableToStaff(txCtx, targetStaffID, bounds.Start, bounds.End)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get time off for staff id=%s: %v", targetStaffID, err)
			return fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
		}

		// 10.3. Активные бронирования целевого сотрудника на целевую дату
		// с блокировкой строк, собственная строка исключается из выборки
		filter := domain.BookingsFilter{
			StaffID:         &targetStaffID,
			StartDate:       &targetDate,
			EndDate:         &targetDate,
			IncludeInactive: false,
			ExcludeID:       &req.BookingID,
		}

		bookings, err := uc.bookingRepo.GetWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to get bookings for staff id=%s: %v", targetStaffID, err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 10.4. Проверяем целевой слот
		candidate := scheduling.Candidate{
			StaffID:          targetStaffID,
			Date:             targetDate,
			StartTime:        targetStart,
			DurationMinutes:  fresh.DurationMinutes,
			ExcludeBookingID: &req.BookingID,
		}

		day := staff.Schedule.ToDomain().ForWeekday(targetDate.Weekday())
		if err := scheduling.ValidateCandidate(candidate, day, uc.location, timeOffs, bookings); err != nil {
			metrics.BookingsRejected.WithLabelValues(rejectionReason(err)).Inc()
			uc.logger.Warn("RescheduleBooking: target slot rejected for booking id=%d: %v", req.BookingID, err)
			return err
		}

		// 10.5. Атомарно заменяем интервал
		if err := uc.bookingRepo.Reschedule(txCtx, req.BookingID, targetStaffID, targetStaffName, targetDate, targetStart); err != nil {
			uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to reschedule booking: %v", ErrInternal, err)
		}

		// 10.6. Перечитываем обновленное бронирование
		result, err = uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			uc.logger.Error("RescheduleBooking: failed to read rescheduled booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to read rescheduled booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to staff=%s, date=%s, time=%s",
		result.ID, result.StaffID, result.BookingDate.Format(domain.DateFormat), result.StartTime)

	return toResponse(result), nil
}

// checkAccess проверяет, что вызывающий имеет доступ к бронированию.
// Доступ есть у клиента бронирования, у его сотрудника и у администратора.
func (uc *UseCase) checkAccess(ctx context.Context, booking *domain.Booking, callerID string) error {
	if booking.CustomerID == callerID {
		return nil
	}

	staff, err := uc.staffClient.GetStaff(ctx, callerID)
	if err != nil {
		if errors.Is(err, staffClient.ErrStaffNotFound) {
			return ErrAccessDenied
		}
		if errors.Is(err, staffClient.ErrServiceDegraded) {
			uc.logger.Error("RescheduleBooking: staff directory unavailable: %v", err)
			return fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
		}
		uc.logger.Error("RescheduleBooking: failed to resolve caller id=%s: %v", callerID, err)
		return fmt.Errorf("%w: failed to resolve caller: %v", ErrInternal, err)
	}

	if staff.ID == booking.StaffID || staff.IsManager() {
		return nil
	}

	return ErrAccessDenied
}

// toResponse конвертирует доменную модель в ответ use case
func toResponse(booking *domain.Booking) *Response {
	return &Response{
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
