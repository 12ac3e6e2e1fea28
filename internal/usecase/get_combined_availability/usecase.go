package get_combined_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	"github.com/m04kA/SBP-SchedulingService/internal/integrations/staffdirectory"
	"github.com/m04kA/SBP-SchedulingService/internal/scheduling"
)

// UseCase use case для получения сводной доступности по услуге
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

// Execute выполняет use case получения сводной доступности.
// Для каждого подходящего сотрудника рассчитываются свободные слоты, результат
// сливается в карту "время начала -> список свободных сотрудников".
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetCombinedAvailability: service=%s, date=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCombinedAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу из справочника
	service, err := uc.staffClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, staffdirectory.ErrServiceNotFound) {
			uc.logger.Warn("GetCombinedAvailability: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		if errors.Is(err, staffdirectory.ErrServiceDegraded) {
			uc.logger.Error("GetCombinedAvailability: staff directory unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
		}
		uc.logger.Error("GetCombinedAvailability: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 3. Получаем всех сотрудников из справочника
	allStaff, err := uc.staffClient.ListStaff(ctx)
	if err != nil {
		if errors.Is(err, staffdirectory.ErrServiceDegraded) {
			uc.logger.Error("GetCombinedAvailability: staff directory unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
		}
		uc.logger.Error("GetCombinedAvailability: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	// 4. Отбираем активных сотрудников, оказывающих услугу.
	// Пустой список staff_ids у услуги означает, что её оказывает вся команда.
	candidates := make([]*staffdirectory.Staff, 0, len(allStaff))
	for _, staff := range allStaff {
		if !staff.IsActive {
			continue
		}
		if !service.IsServedBy(staff.ID) {
			continue
		}
		candidates = append(candidates, staff)
	}

	// 5. Приводим дату к календарю бизнеса
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.location)

	combined := domain.CombinedAvailability{}
	if len(candidates) == 0 {
		uc.logger.Info("GetCombinedAvailability: no staff provides service id=%s", req.ServiceID)
		return &Response{
			ServiceID:       req.ServiceID,
			Date:            date,
			DurationMinutes: service.DurationMinutes,
			Slots:           combined,
		}, nil
	}

	// 6. Получаем все отгулы, пересекающие дату, одним запросом
	bounds := domain.DayBounds(date, uc.location)
	timeOffs, err := uc.timeOffRepo.ListInRange(ctx, bounds.Start, bounds.End)
	if err != nil {
		uc.logger.Error("GetCombinedAvailability: failed to get time off: %v", err)
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	// 7. Получаем все активные бронирования на дату одним запросом
	filter := domain.BookingsFilter{
		StartDate:       &date,
		EndDate:         &date,
		IncludeInactive: false,
	}

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetCombinedAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Рассчитываем слоты каждого сотрудника и сливаем в сводную карту
	weekday := date.Weekday()
	for _, staff := range candidates {
		day := staff.Schedule.ToDomain().ForWeekday(weekday)
		if !day.IsWorking {
			continue
		}

		slots, err := scheduling.AvailableSlots(staff.ID, day, service.DurationMinutes, date, uc.location, bookings, timeOffs)
		if err != nil {
			uc.logger.Error("GetCombinedAvailability: failed to calculate slots for staff id=%s: %v", staff.ID, err)
			return nil, fmt.Errorf("%w: failed to calculate slots: %v", ErrInternal, err)
		}

		for _, slot := range slots {
			combined.Add(slot, staff.ID)
		}
	}

	combined.Normalize()

	uc.logger.Info("GetCombinedAvailability: service=%s, date=%s, %d staff checked, %d distinct slots",
		req.ServiceID, date.Format(domain.DateFormat), len(candidates), len(combined))

	return &Response{
		ServiceID:       req.ServiceID,
		Date:            date,
		DurationMinutes: service.DurationMinutes,
		Slots:           combined,
	}, nil
}
