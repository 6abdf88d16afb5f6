package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulerService/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL, означающие нарушение ограничений на пересечение
// интервалов слотов (unique на (host_id, start_time) и exclusion constraint)
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

var slotColumns = []string{
	"id",
	"host_id",
	"start_time",
	"end_time",
	"status",
	"booking_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с инвентарём слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот со статусом available
//
// Защита от пересечения интервалов обеспечивается атомарно на уровне БД:
// unique (host_id, start_time) и exclusion constraint по диапазону времени.
// Нарушение любого из них транслируется в ErrSlotOverlap
func (r *Repository) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns(
			"host_id",
			"start_time",
			"end_time",
			"status",
		).
		Values(
			slot.HostID,
			slot.StartTime,
			slot.EndTime,
			domain.SlotStatusAvailable,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isOverlapViolation(err) {
			return nil, fmt.Errorf("%w: host_id=%d, start_time=%s", ErrSlotOverlap,
				slot.HostID, slot.StartTime.Format(domain.TimeFormat))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.Status = domain.SlotStatusAvailable
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlotRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// List получает слоты хоста с фильтрацией по окну и статусу
// Возвращает слоты, ПЕРЕСЕКАЮЩИЕСЯ с окном [WindowStart, WindowEnd),
// отсортированные по start_time по возрастанию.
// Каждый вызов перечитывает актуальное состояние - курсор между вызовами не хранится
func (r *Repository) List(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"host_id": filter.HostID}).
		OrderBy("start_time ASC")

	// Пересечение с окном: start_time < windowEnd AND end_time > windowStart
	if filter.WindowEnd != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.WindowEnd})
	}
	if filter.WindowStart != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *filter.WindowStart})
	}

	// Фильтрация по статусу, если указан
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListByBooking получает слоты, привязанные к бронированию,
// отсортированные по start_time
func (r *Repository) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// UpdateStatus условно переводит ВСЕ перечисленные слоты из статуса from
// в статус to одним запросом
//
// Это несущая конструкция всей схемы: UPDATE затрагивает строку только если
// её текущий статус равен from, и операция считается успешной только когда
// затронуты ВСЕ запрошенные слоты. Если хотя бы один слот был конкурентно
// занят (статус уже не from), возвращается ErrConflict и вызывающая
// транзакция обязана откатиться - частичного перехода не существует.
//
// Метод должен вызываться внутри транзакции (executor из контекста),
// иначе "все или ничего" не гарантируется
func (r *Repository) UpdateStatus(ctx context.Context, ids []int64, from, to domain.SlotStatus, bookingID *int64) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", to).
		Set("booking_id", bookingID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		Where(squirrel.Eq{"status": from}).
		ToSql()

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

	// Проверка количества затронутых строк и есть условное обновление:
	// меньше ожидаемого - значит кто-то успел занять часть слотов
	if rowsAffected != int64(len(ids)) {
		return fmt.Errorf("%w: expected %d slots in status %q, updated %d",
			ErrConflict, len(ids), from, rowsAffected)
	}

	return nil
}

// ReleaseByBooking освобождает все слоты бронирования (booked -> available)
// Возвращает количество освобождённых слотов
func (r *Repository) ReleaseByBooking(ctx context.Context, bookingID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotStatusAvailable).
		Set("booking_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": bookingID}).
		Where(squirrel.Eq{"status": domain.SlotStatusBooked}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByBooking - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByBooking - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByBooking - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// Delete удаляет слот, если он свободен
// Удаление занятого слота запрещено - сначала нужно отменить бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.SlotStatusAvailable}).
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
		// Условие не сработало: либо слота нет, либо он занят
		if _, err := r.GetByID(ctx, id); err != nil {
			if errors.Is(err, ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return err
		}
		return ErrSlotBooked
	}

	return nil
}

// PurgeAvailableBefore удаляет свободные слоты, закончившиеся до cutoff
// Используется фоновой очисткой инвентаря; занятые слоты не трогает
func (r *Repository) PurgeAvailableBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Lt{"end_time": cutoff}).
		Where(squirrel.Eq{"status": domain.SlotStatusAvailable}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: PurgeAvailableBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeAvailableBefore - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeAvailableBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// scanSlotRow сканирует одну строку слота
func scanSlotRow(row *sql.Row) (*domain.Slot, error) {
	var slot domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.HostID,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Status,
		&slot.BookingID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var slot domain.Slot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.HostID,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Status,
			&slot.BookingID,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// isOverlapViolation проверяет, что ошибка - нарушение constraint'а
// на пересечение интервалов слотов
func isOverlapViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation || pqErr.Code == pgExclusionViolation
	}
	return false
}
