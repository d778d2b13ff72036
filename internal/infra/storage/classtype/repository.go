package classtype

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/psqlbuilder"
)

var classTypeColumns = []string{
	"id",
	"name",
	"description",
	"credit_cost",
	"duration_minutes",
	"max_capacity",
	"image_url",
	"is_active",
	"created_at",
}

// Repository репозиторий для работы с типами классов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов классов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый тип класса
func (r *Repository) Create(ctx context.Context, ct *domain.ClassType) (*domain.ClassType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("class_types").
		Columns("name", "description", "credit_cost", "duration_minutes", "max_capacity", "image_url", "is_active").
		Values(ct.Name, ct.Description, ct.CreditCost, ct.DurationMinutes, ct.MaxCapacity, ct.ImageURL, ct.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&ct.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	ct.CreatedAt = createdAt.Time

	return ct, nil
}

// GetByID получает тип класса по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ClassType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(classTypeColumns...).
		From("class_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var ct domain.ClassType
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&ct.ID,
		&ct.Name,
		&ct.Description,
		&ct.CreditCost,
		&ct.DurationMinutes,
		&ct.MaxCapacity,
		&ct.ImageURL,
		&ct.IsActive,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrClassTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan class type: %w", ErrScanRow, err)
	}

	ct.CreatedAt = createdAt.Time

	return &ct, nil
}

// List получает список типов классов
// onlyActive = true ограничивает выборку активными типами
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]*domain.ClassType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(classTypeColumns...).
		From("class_types").
		OrderBy("name ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	classTypes := make([]*domain.ClassType, 0)

	for rows.Next() {
		var ct domain.ClassType
		var createdAt sql.NullTime

		err := rows.Scan(
			&ct.ID,
			&ct.Name,
			&ct.Description,
			&ct.CreditCost,
			&ct.DurationMinutes,
			&ct.MaxCapacity,
			&ct.ImageURL,
			&ct.IsActive,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}

		ct.CreatedAt = createdAt.Time
		classTypes = append(classTypes, &ct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return classTypes, nil
}

// Update обновляет тип класса
func (r *Repository) Update(ctx context.Context, ct *domain.ClassType) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("class_types").
		Set("name", ct.Name).
		Set("description", ct.Description).
		Set("credit_cost", ct.CreditCost).
		Set("duration_minutes", ct.DurationMinutes).
		Set("max_capacity", ct.MaxCapacity).
		Set("image_url", ct.ImageURL).
		Set("is_active", ct.IsActive).
		Where(squirrel.Eq{"id": ct.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrClassTypeNotFound
	}

	return nil
}

// Delete удаляет тип класса (физическое удаление)
// Блокировка зависимых расписаний выполняется на уровне сервиса
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("class_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrClassTypeNotFound
	}

	return nil
}
