package timeoff

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	timeoffRepo "github.com/m04kA/SBP-SchedulingService/internal/infra/storage/timeoff"
	staffClient "github.com/m04kA/SBP-SchedulingService/internal/integrations/staffdirectory"
	"github.com/m04kA/SBP-SchedulingService/internal/service/timeoff/models"
)

// Service сервис для управления отгулами и выходными.
// Все операции доступны только администратору.
type Service struct {
	timeOffRepo TimeOffRepository
	staffClient StaffDirectoryClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса отгулов
func NewService(
	timeOffRepo TimeOffRepository,
	staffClient StaffDirectoryClient,
	logger Logger,
) *Service {
	return &Service{
		timeOffRepo: timeOffRepo,
		staffClient: staffClient,
		logger:      logger,
	}
}

// Create создает запись об отгуле для сотрудника или для всего бизнеса.
// Записи со staff_id "all" блокируют доступность каждого сотрудника.
func (s *Service) Create(ctx context.Context, req *models.CreateTimeOffRequest) (*models.TimeOffResponse, error) {
	s.logger.Info("Create: creating time off for staff=%s, period=%s..%s by caller=%s",
		req.StaffID, req.StartAt.Format(domain.DateFormat), req.EndAt.Format(domain.DateFormat), req.CallerID)

	// 1. Валидируем входные данные
	if err := s.validateTimeOffData(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа (только администратор)
	if err := s.checkManagerAccess(ctx, req.CallerID); err != nil {
		s.logger.Warn("Create: access denied for caller=%s", req.CallerID)
		return nil, err
	}

	// 3. Проверяем существование сотрудника, если отгул не на весь бизнес
	if req.StaffID != domain.StaffScopeAll {
		if _, err := s.staffClient.GetStaff(ctx, req.StaffID); err != nil {
			if errors.Is(err, staffClient.ErrStaffNotFound) {
				s.logger.Warn("Create: staff id=%s not found", req.StaffID)
				return nil, ErrStaffNotFound
			}
			if errors.Is(err, staffClient.ErrServiceDegraded) {
				s.logger.Error("Create: staff directory unavailable: %v", err)
				return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
			}
			s.logger.Error("Create: failed to get staff id=%s: %v", req.StaffID, err)
			return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
	}

	// 4. Создаем запись
	created, err := s.timeOffRepo.Create(ctx, req.ToDomainTimeOff())
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created time off id=%d for staff=%s", created.ID, created.StaffID)
	return models.FromDomainTimeOff(created), nil
}

// List получает список отгулов с фильтрацией по сотруднику и периоду.
// Фильтр по сотруднику включает записи "all".
func (s *Service) List(ctx context.Context, req *models.ListTimeOffRequest) (*models.TimeOffListResponse, error) {
	s.logger.Info("List: fetching time offs for staff=%v by caller=%s", req.StaffID, req.CallerID)

	// 1. Валидируем период
	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("List: invalid period for caller=%s", req.CallerID)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	// 2. Проверяем права доступа (только администратор)
	if err := s.checkManagerAccess(ctx, req.CallerID); err != nil {
		s.logger.Warn("List: access denied for caller=%s", req.CallerID)
		return nil, err
	}

	// 3. Выбираем записи
	timeOffs, err := s.timeOffRepo.ListWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d time offs", len(timeOffs))
	return models.FromDomainTimeOffList(timeOffs), nil
}

// Delete удаляет запись об отгуле
func (s *Service) Delete(ctx context.Context, id int64, req *models.DeleteTimeOffRequest) error {
	s.logger.Info("Delete: deleting time off id=%d by caller=%s", id, req.CallerID)

	// 1. Проверяем права доступа (только администратор)
	if err := s.checkManagerAccess(ctx, req.CallerID); err != nil {
		s.logger.Warn("Delete: access denied for caller=%s", req.CallerID)
		return err
	}

	// 2. Проверяем существование записи
	if _, err := s.timeOffRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, timeoffRepo.ErrTimeOffNotFound) {
			s.logger.Warn("Delete: time off id=%d not found", id)
			return ErrTimeOffNotFound
		}
		s.logger.Error("Delete: repository error for time off id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	// 3. Удаляем запись
	if err := s.timeOffRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, timeoffRepo.ErrTimeOffNotFound) {
			s.logger.Warn("Delete: time off id=%d not found during deletion", id)
			return ErrTimeOffNotFound
		}
		s.logger.Error("Delete: repository error for time off id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted time off id=%d", id)
	return nil
}

// Вспомогательные методы

// validateTimeOffData валидирует параметры отгула
func (s *Service) validateTimeOffData(req *models.CreateTimeOffRequest) error {
	if req.StaffID == "" {
		return fmt.Errorf("%w: staffId is required", ErrInvalidInput)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}

	if !req.StartAt.Before(req.EndAt) {
		return fmt.Errorf("%w: startAt must be before endAt", ErrInvalidInput)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxTimeOffReasonLength {
		return fmt.Errorf("%w: reason must not exceed %d characters", ErrInvalidInput, domain.MaxTimeOffReasonLength)
	}

	return nil
}

// checkManagerAccess проверяет, что вызывающий является администратором
func (s *Service) checkManagerAccess(ctx context.Context, callerID string) error {
	staff, err := s.staffClient.GetStaff(ctx, callerID)
	if err != nil {
		if errors.Is(err, staffClient.ErrStaffNotFound) {
			return ErrAccessDenied
		}
		if errors.Is(err, staffClient.ErrServiceDegraded) {
			s.logger.Error("checkManagerAccess: staff directory unavailable: %v", err)
			return fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
		}
		s.logger.Error("checkManagerAccess: failed to get staff id=%s: %v", callerID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get staff: %v", ErrInternal, err)
	}

	if !staff.IsManager() {
		return ErrAccessDenied
	}

	return nil
}
