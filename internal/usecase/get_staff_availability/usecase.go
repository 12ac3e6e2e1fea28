package get_staff_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	"github.com/m04kA/SBP-SchedulingService/internal/integrations/staffdirectory"
	"github.com/m04kA/SBP-SchedulingService/internal/scheduling"
	"github.com/m04kA/SBP-SchedulingService/pkg/types"
)

// UseCase use case для получения свободных слотов сотрудника
type UseCase struct {
	bookingRepo BookingRepository
	timeOffRepo TimeOffRepository
	staffClient StaffDirectoryClient
	location    *time.Location
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	timeOffRepo TimeOffRepository,
	staffClient StaffDirectoryClient,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		timeOffRepo: timeOffRepo,
		staffClient: staffClient,
		location:    location,
		logger:      logger,
	}
}

// Execute выполняет use case получения свободных слотов сотрудника
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetStaffAvailability: staff=%s, service=%s, date=%s",
		req.StaffID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetStaffAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем сотрудника из справочника
	staff, err := uc.staffClient.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffdirectory.ErrStaffNotFound) {
			uc.logger.Warn("GetStaffAvailability: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		if errors.Is(err, staffdirectory.ErrServiceDegraded) {
			uc.logger.Error("GetStaffAvailability: staff directory unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
		}
		uc.logger.Error("GetStaffAvailability: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	// 3. Получаем услугу из справочника
	service, err := uc.staffClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, staffdirectory.ErrServiceNotFound) {
			uc.logger.Warn("GetStaffAvailability: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		if errors.Is(err, staffdirectory.ErrServiceDegraded) {
			uc.logger.Error("GetStaffAvailability: staff directory unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
		}
		uc.logger.Error("GetStaffAvailability: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем, что сотрудник оказывает услугу
	if !service.IsServedBy(req.StaffID) {
		uc.logger.Warn("GetStaffAvailability: service id=%s is not provided by staff id=%s",
			req.ServiceID, req.StaffID)
		return nil, ErrServiceNotProvidedByStaff
	}

	// 5. Неактивный сотрудник не принимает записи
	if !staff.IsActive {
		uc.logger.Info("GetStaffAvailability: staff id=%s is inactive, returning empty slots", req.StaffID)
		return &Response{
			StaffID:         req.StaffID,
			ServiceID:       req.ServiceID,
			Date:            req.Date,
			DurationMinutes: service.DurationMinutes,
			Slots:           []types.TimeString{},
		}, nil
	}

	// 6. Приводим дату к календарю бизнеса и определяем рабочие часы на день недели
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.location)
	day := staff.Schedule.ToDomain().ForWeekday(date.Weekday())
	if !day.IsWorking {
		uc.logger.Info("GetStaffAvailability: staff id=%s does not work on %s, returning empty slots",
			req.StaffID, date.Format(domain.DateFormat))
		return &Response{
			StaffID:         req.StaffID,
			ServiceID:       req.ServiceID,
			Date:            date,
			DurationMinutes: service.DurationMinutes,
			Slots:           []types.TimeString{},
		}, nil
	}

	// 7. Получаем отгулы сотрудника и общие блокировки, пересекающие дату
	bounds := domain.DayBounds(date, uc.location)
	timeOffs, err := uc.timeOffRepo.ListApplicableToStaff(ctx, req.StaffID, bounds.Start, bounds.End)
	if err != nil {
		uc.logger.Error("GetStaffAvailability: failed to get time off for staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	// 8. Получаем активные бронирования сотрудника на дату
	filter := domain.BookingsFilter{
		StaffID:         &req.StaffID,
		StartDate:       &date,
		EndDate:         &date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetStaffAvailability: failed to get bookings for staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 9. Рассчитываем свободные слоты
	slots, err := scheduling.AvailableSlots(req.StaffID, day, service.DurationMinutes, date, uc.location, bookings, timeOffs)
	if err != nil {
		uc.logger.Error("GetStaffAvailability: failed to calculate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to calculate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetStaffAvailability: staff=%s, date=%s, found %d available slots",
		req.StaffID, date.Format(domain.DateFormat), len(slots))

	return &Response{
		StaffID:         req.StaffID,
		ServiceID:       req.ServiceID,
		Date:            date,
		DurationMinutes: service.DurationMinutes,
		Slots:           slots,
	}, nil
}
