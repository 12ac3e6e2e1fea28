package timeoff

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	"github.com/m04kA/SBP-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SBP-SchedulingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с отгулами и закрытиями бизнеса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отгулов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый отгул
// staff_id со значением domain.StaffScopeAll блокирует всех сотрудников
func (r *Repository) Create(ctx context.Context, timeOff *domain.TimeOff) (*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_off").
		Columns(
			"staff_id",
			"start_at",
			"end_at",
			"reason",
		).
		Values(
			timeOff.StaffID,
			timeOff.StartAt,
			timeOff.EndAt,
			timeOff.Reason,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&timeOff.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	timeOff.CreatedAt = createdAt.Time
	timeOff.UpdatedAt = updatedAt.Time

	return timeOff, nil
}

// GetByID получает отгул по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"start_at",
		"end_at",
		"reason",
		"created_at",
		"updated_at",
	).
		From("time_off").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var timeOff domain.TimeOff
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&timeOff.ID,
		&timeOff.StaffID,
		&timeOff.StartAt,
		&timeOff.EndAt,
		&timeOff.Reason,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTimeOffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan time off: %v", ErrScanRow, err)
	}

	timeOff.CreatedAt = createdAt.Time
	timeOff.UpdatedAt = updatedAt.Time

	return &timeOff, nil
}

// ListApplicableToStaff получает отгулы, действующие на сотрудника и
// пересекающиеся с указанным периодом. Учитываются персональные отгулы
// и закрытия всего бизнеса (staff_id = 'all'). Интервалы полуоткрытые:
// касание границ пересечением не считается.
func (r *Repository) ListApplicableToStaff(ctx context.Context, staffID string, from, to time.Time) ([]*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"start_at",
		"end_at",
		"reason",
		"created_at",
		"updated_at",
	).
		From("time_off").
		Where(squirrel.Or{
			squirrel.Eq{"staff_id": staffID},
			squirrel.Eq{"staff_id": domain.StaffScopeAll},
		}).
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListApplicableToStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListApplicableToStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTimeOffs(rows)
}

// ListInRange получает отгулы всех сотрудников, пересекающиеся с периодом.
// Используется при расчёте общей доступности, чтобы выбрать записи для всех
// сотрудников одним запросом.
func (r *Repository) ListInRange(ctx context.Context, from, to time.Time) ([]*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"start_at",
		"end_at",
		"reason",
		"created_at",
		"updated_at",
	).
		From("time_off").
		Where(squirrel.Lt{"start_at": to}).
		Where(squirrel.Gt{"end_at": from}).
		OrderBy("start_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTimeOffs(rows)
}

// ListWithFilter получает отгулы с опциональной фильтрацией по сотруднику и периоду
// Используется админскими ручками для просмотра реестра отгулов
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.TimeOffFilter) ([]*domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"staff_id",
		"start_at",
		"end_at",
		"reason",
		"created_at",
		"updated_at",
	).
		From("time_off").
		OrderBy("start_at ASC")

	// Фильтр по сотруднику учитывает записи, действующие на всех
	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"staff_id": *filter.StaffID},
			squirrel.Eq{"staff_id": domain.StaffScopeAll},
		})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanTimeOffs(rows)
}

// Delete удаляет отгул
// Удаление физическое: история отгулов для расчётов не нужна
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_off").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTimeOffNotFound
	}

	return nil
}

// scanTimeOffs сканирует результаты запроса в слайс отгулов
func (r *Repository) scanTimeOffs(rows *sql.Rows) ([]*domain.TimeOff, error) {
	timeOffs := make([]*domain.TimeOff, 0)

	for rows.Next() {
		var timeOff domain.TimeOff
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&timeOff.ID,
			&timeOff.StaffID,
			&timeOff.StartAt,
			&timeOff.EndAt,
			&timeOff.Reason,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanTimeOffs - scan row: %v", ErrScanRow, err)
		}

		timeOff.CreatedAt = createdAt.Time
		timeOff.UpdatedAt = updatedAt.Time

		timeOffs = append(timeOffs, &timeOff)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanTimeOffs - rows error: %v", ErrScanRow, err)
	}

	return timeOffs, nil
}
