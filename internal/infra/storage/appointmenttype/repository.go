package appointmenttype

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulerService/pkg/psqlbuilder"
)

// Репозиторий только для чтения: справочник типов встреч принадлежит
// админке и редактируется вне планировщика

// Repository репозиторий для чтения типов встреч
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов встреч
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает тип встречи по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AppointmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"duration_minutes",
		"created_at",
		"updated_at",
	).
		From("appointment_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var at domain.AppointmentType
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&at.ID,
		&at.Name,
		&at.DurationMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment type: %v", ErrScanRow, err)
	}

	at.CreatedAt = createdAt.Time
	at.UpdatedAt = updatedAt.Time

	return &at, nil
}

// List получает все типы встреч, отсортированные по имени
func (r *Repository) List(ctx context.Context) ([]*domain.AppointmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"duration_minutes",
		"created_at",
		"updated_at",
	).
		From("appointment_types").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	types := make([]*domain.AppointmentType, 0)
	for rows.Next() {
		var at domain.AppointmentType
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(&at.ID, &at.Name, &at.DurationMinutes, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		at.CreatedAt = createdAt.Time
		at.UpdatedAt = updatedAt.Time

		types = append(types, &at)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return types, nil
}
