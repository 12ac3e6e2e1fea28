package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SBP-SchedulingService/internal/domain"
	"github.com/m04kA/SBP-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SBP-SchedulingService/pkg/psqlbuilder"
	"github.com/m04kA/SBP-SchedulingService/pkg/types"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Иначе выполняет обычный запрос без транзакции.
//
// Создание с проверкой доступности слота всегда должно идти внутри транзакции,
// чтобы проверка и запись видели один и тот же снимок бронирований.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_id",
			"staff_id",
			"service_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
			"series_id",
			"transaction_id",
			"customer_name",
			"staff_name",
			"service_name",
			"service_price",
			"notes",
		).
		Values(
			booking.CustomerID,
			booking.StaffID,
			booking.ServiceID,
			booking.BookingDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
			booking.SeriesID,
			booking.TransactionID,
			booking.CustomerName,
			booking.StaffName,
			booking.ServiceName,
			booking.ServicePrice,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"customer_id",
		"staff_id",
		"service_id",
		"booking_date",
		"start_time",
		"duration_minutes",
		"status",
		"series_id",
		"transaction_id",
		"customer_name",
		"staff_name",
		"service_name",
		"service_price",
		"notes",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.StaffID,
		&booking.ServiceID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&booking.SeriesID,
		&booking.TransactionID,
		&booking.CustomerName,
		&booking.StaffName,
		&booking.ServiceName,
		&booking.ServicePrice,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// GetByCustomerID получает список бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByCustomerID(ctx context.Context, customerID string, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"customer_id",
		"staff_id",
		"service_id",
		"booking_date",
		"start_time",
		"duration_minutes",
		"status",
		"series_id",
		"transaction_id",
		"customer_name",
		"staff_name",
		"service_name",
		"service_price",
		"notes",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("booking_date DESC, start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetWithFilter получает бронирования с гибкой фильтрацией
// Поддерживает фильтрацию по:
// - Сотруднику (StaffID) - опционально, nil означает всех сотрудников
// - Периоду (StartDate, EndDate) - опционально
// - Статусу (Status) - опционально
// - Включению отменённых бронирований (IncludeInactive)
// - Исключению бронирования по ID (ExcludeID) - для проверок при переносе
//
// Примеры использования:
//
// 1. Занимающие слот бронирования сотрудника на дату:
//    date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
//    filter := domain.BookingsFilter{StaffID: &staffID, StartDate: &date, EndDate: &date}
//
// 2. Бронирования всех сотрудников на дату (для общей доступности):
//    filter := domain.BookingsFilter{StartDate: &date, EndDate: &date}
//
// 3. Все бронирования сотрудника включая отменённые:
//    filter := domain.BookingsFilter{StaffID: &staffID, IncludeInactive: true}
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"customer_id",
		"staff_id",
		"service_id",
		"booking_date",
		"start_time",
		"duration_minutes",
		"status",
		"series_id",
		"transaction_id",
		"customer_name",
		"staff_name",
		"service_name",
		"service_price",
		"notes",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("bookings")

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	// Исключаем бронирование по ID (при переносе оно не конфликтует само с собой)
	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны отменённые - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	// Определяем сортировку в зависимости от фильтра
	if isSingleDate(filter) {
		// Для конкретной даты сортируем по времени начала (ASC)
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		// Для периода сортируем по дате и времени (DESC - сначала новые)
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	// Внутри транзакции блокируем строки сотрудника на дату, чтобы
	// параллельные проверки доступности сериализовались
	if dbmetrics.IsInTransaction(ctx) && filter.StaffID != nil && isSingleDate(filter) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
// transactionID сохраняется вместе со статусом, когда визит закрывается оплатой
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, transactionID *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if transactionID != nil {
		updateBuilder = updateBuilder.Set("transaction_id", *transactionID)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Reschedule переносит бронирование на новые дату, время и сотрудника.
// Статус и принадлежность к серии при переносе не меняются.
func (r *Repository) Reschedule(ctx context.Context, id int64, staffID, staffName string, date time.Time, startTime types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("staff_id", staffID).
		Set("staff_name", staffName).
		Set("booking_date", date).
		Set("start_time", startTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reschedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ListConfirmedEndedBefore получает подтвержденные бронирования, чей интервал
// закончился не позже cutoff. cutoff интерпретируется как локальное время
// бизнеса, так как booking_date и start_time хранятся в локальном времени.
func (r *Repository) ListConfirmedEndedBefore(ctx context.Context, cutoff time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"customer_id",
		"staff_id",
		"service_id",
		"booking_date",
		"start_time",
		"duration_minutes",
		"status",
		"series_id",
		"transaction_id",
		"customer_name",
		"staff_name",
		"service_name",
		"service_price",
		"notes",
		"cancellation_reason",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Expr(
			"booking_date + start_time + make_interval(mins => duration_minutes) <= ?::timestamp",
			cutoff.Format("2006-01-02 15:04:05"),
		)).
		OrderBy("booking_date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedEndedBefore - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedEndedBefore - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// isSingleDate проверяет, что фильтр ограничен одной конкретной датой
func isSingleDate(filter domain.BookingsFilter) bool {
	return filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.CustomerID,
			&booking.StaffID,
			&booking.ServiceID,
			&booking.BookingDate,
			&booking.StartTime,
			&booking.DurationMinutes,
			&booking.Status,
			&booking.SeriesID,
			&booking.TransactionID,
			&booking.CustomerName,
			&booking.StaffName,
			&booking.ServiceName,
			&booking.ServicePrice,
			&booking.Notes,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
