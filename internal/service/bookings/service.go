package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	bookingRepo "github.com/m04kA/SBP-SchedulingService/internal/infra/storage/booking"
	staffClient "github.com/m04kA/SBP-SchedulingService/internal/integrations/staffdirectory"
	"github.com/m04kA/SBP-SchedulingService/internal/service/bookings/models"
	"github.com/m04kA/SBP-SchedulingService/pkg/metrics"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo BookingRepository
	staffClient StaffDirectoryClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	staffClient StaffDirectoryClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		staffClient: staffClient,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Доступно клиенту бронирования, его сотруднику и администратору.
func (s *Service) GetByID(ctx context.Context, id int64, callerID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for caller=%s", id, callerID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkBookingAccess(ctx, booking, callerID); err != nil {
		s.logger.Warn("GetByID: access denied for caller=%s to booking id=%d", callerID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента.
// Клиент видит только свою историю, администратор - любую.
// Опционально фильтрует по статусу.
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%s, caller=%s, status=%v",
		req.CustomerID, req.CallerID, req.Status)

	// Чужую историю может смотреть только администратор
	if req.CallerID != req.CustomerID {
		if err := s.checkManagerAccess(ctx, req.CallerID); err != nil {
			s.logger.Warn("GetCustomerBookings: access denied for caller=%s to customer=%s", req.CallerID, req.CustomerID)
			return nil, err
		}
	}

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%s", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%s: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: successfully fetched %d bookings for customer=%s", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetStaffDay получает дневной календарь сотрудника.
// Доступно самому сотруднику и администратору.
func (s *Service) GetStaffDay(ctx context.Context, req *models.GetStaffDayRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetStaffDay: fetching bookings for staff=%s, date=%s, caller=%s",
		req.StaffID, req.Date.Format(domain.DateFormat), req.CallerID)

	// Сотрудник видит только свой календарь, администратор - любой
	if req.CallerID != req.StaffID {
		if err := s.checkManagerAccess(ctx, req.CallerID); err != nil {
			s.logger.Warn("GetStaffDay: access denied for caller=%s to staff=%s", req.CallerID, req.StaffID)
			return nil, err
		}
	}

	filter := domain.BookingsFilter{
		StaffID:         &req.StaffID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: req.IncludeInactive,
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetStaffDay: repository error for staff=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: GetStaffDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStaffDay: successfully fetched %d bookings for staff=%s", len(bookings), req.StaffID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование и освобождает его интервал.
// Повторная отмена уже отмененного бронирования является no-op и возвращает
// бронирование без изменений. Завершенные бронирования отменять нельзя.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by caller=%s", bookingID, req.CallerID)

	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkBookingAccess(ctx, booking, req.CallerID); err != nil {
		s.logger.Warn("Cancel: access denied for caller=%s to booking id=%d", req.CallerID, bookingID)
		return nil, err
	}

	// Повторная отмена - идемпотентный no-op
	if booking.IsCancelled() {
		s.logger.Info("Cancel: booking id=%d is already cancelled", bookingID)
		return models.FromDomainBooking(booking), nil
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.Reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found during cancellation", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	metrics.BookingsCancelled.Inc()

	cancelled, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("Cancel: failed to re-read booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return models.FromDomainBooking(cancelled), nil
}

// UpdateStatus обновляет статус бронирования по правилам жизненного цикла.
// Доступно только администратору. При завершении опционально фиксируется
// ссылка на оплату. Отмена выполняется отдельной операцией Cancel.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by caller=%s",
		bookingID, req.Status, req.CallerID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Статусы меняет только администратор
	if err := s.checkManagerAccess(ctx, req.CallerID); err != nil {
		s.logger.Warn("UpdateStatus: access denied for caller=%s to booking id=%d", req.CallerID, bookingID)
		return nil, err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if newStatus == domain.StatusCancelled {
		s.logger.Warn("UpdateStatus: cancellation of booking id=%d requested through status update", bookingID)
		return nil, fmt.Errorf("%w: cancellation is a separate operation", ErrInvalidInput)
	}

	if req.TransactionID != nil && newStatus != domain.StatusCompleted {
		return nil, fmt.Errorf("%w: transactionId is only allowed when completing a booking", ErrInvalidInput)
	}

	// Проверяем переход по таблице жизненного цикла
	if !booking.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
			booking.Status, newStatus, bookingID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus, req.TransactionID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if newStatus == domain.StatusCompleted {
		metrics.BookingsCompleted.Inc()
	}

	updated, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to re-read booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return models.FromDomainBooking(updated), nil
}

// CompleteFinished переводит подтвержденные бронирования с прошедшим временем
// окончания в completed. Вызывается фоновым воркером, возвращает количество
// обработанных бронирований. Ошибка одного бронирования не прерывает проход.
func (s *Service) CompleteFinished(ctx context.Context, now time.Time) (int, error) {
	bookings, err := s.bookingRepo.ListConfirmedEndedBefore(ctx, now)
	if err != nil {
		s.logger.Error("CompleteFinished: repository error: %v", err)
		return 0, fmt.Errorf("%w: CompleteFinished - repository error: %v", ErrInternal, err)
	}

	completed := 0
	for _, booking := range bookings {
		// Выборка отдает только confirmed, переход проверяется на случай гонки
		if !booking.Status.CanTransitionTo(domain.StatusCompleted) {
			s.logger.Warn("CompleteFinished: booking id=%d has status %s, skipping", booking.ID, booking.Status)
			continue
		}

		if err := s.bookingRepo.UpdateStatus(ctx, booking.ID, domain.StatusCompleted, nil); err != nil {
			s.logger.Error("CompleteFinished: failed to complete booking id=%d: %v", booking.ID, err)
			continue
		}

		metrics.BookingsCompleted.Inc()
		completed++
	}

	if completed > 0 {
		s.logger.Info("CompleteFinished: auto-completed %d bookings", completed)
	}

	return completed, nil
}

// Вспомогательные методы

// checkBookingAccess проверяет, что вызывающий имеет доступ к бронированию.
// Доступ есть у клиента бронирования, у его сотрудника и у администратора.
func (s *Service) checkBookingAccess(ctx context.Context, booking *domain.Booking, callerID string) error {
	if booking.CustomerID == callerID {
		return nil
	}

	staff, err := s.resolveStaff(ctx, callerID)
	if err != nil {
		return err
	}

	if staff.ID == booking.StaffID || staff.IsManager() {
		return nil
	}

	return ErrAccessDenied
}

// checkManagerAccess проверяет, что вызывающий является администратором
func (s *Service) checkManagerAccess(ctx context.Context, callerID string) error {
	staff, err := s.resolveStaff(ctx, callerID)
	if err != nil {
		return err
	}

	if !staff.IsManager() {
		s.logger.Warn("checkManagerAccess: caller=%s is not a manager", callerID)
		return ErrAccessDenied
	}

	return nil
}

// resolveStaff находит вызывающего в справочнике сотрудников.
// Вызывающий, которого нет в справочнике, не имеет служебных прав.
func (s *Service) resolveStaff(ctx context.Context, callerID string) (*staffClient.Staff, error) {
	staff, err := s.staffClient.GetStaff(ctx, callerID)
	if err != nil {
		if errors.Is(err, staffClient.ErrStaffNotFound) {
			return nil, ErrAccessDenied
		}
		if errors.Is(err, staffClient.ErrServiceDegraded) {
			s.logger.Error("resolveStaff: staff directory unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
		}
		s.logger.Error("resolveStaff: failed to get staff id=%s: %v", callerID, err)
		return nil, fmt.Errorf("%w: resolveStaff - failed to get staff: %v", ErrInternal, err)
	}

	return staff, nil
}
