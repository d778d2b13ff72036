package instructor

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/psqlbuilder"
)

var instructorColumns = []string{
	"id",
	"name",
	"bio",
	"specialties",
	"email",
	"phone",
	"image_url",
	"is_active",
	"created_at",
}

// Repository репозиторий для работы с инструкторами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория инструкторов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового инструктора
func (r *Repository) Create(ctx context.Context, ins *domain.Instructor) (*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("instructors").
		Columns("name", "bio", "specialties", "email", "phone", "image_url", "is_active").
		Values(ins.Name, ins.Bio, pq.Array(ins.Specialties), ins.Email, ins.Phone, ins.ImageURL, ins.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&ins.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	ins.CreatedAt = createdAt.Time

	return ins, nil
}

// GetByID получает инструктора по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(instructorColumns...).
		From("instructors").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var ins domain.Instructor
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&ins.ID,
		&ins.Name,
		&ins.Bio,
		pq.Array(&ins.Specialties),
		&ins.Email,
		&ins.Phone,
		&ins.ImageURL,
		&ins.IsActive,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrInstructorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan instructor: %w", ErrScanRow, err)
	}

	ins.CreatedAt = createdAt.Time

	return &ins, nil
}

// List получает список инструкторов
// onlyActive = true ограничивает выборку активными инструкторами
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]*domain.Instructor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(instructorColumns...).
		From("instructors").
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

	instructors := make([]*domain.Instructor, 0)

	for rows.Next() {
		var ins domain.Instructor
		var createdAt sql.NullTime

		err := rows.Scan(
			&ins.ID,
			&ins.Name,
			&ins.Bio,
			pq.Array(&ins.Specialties),
			&ins.Email,
			&ins.Phone,
			&ins.ImageURL,
			&ins.IsActive,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}

		ins.CreatedAt = createdAt.Time
		instructors = append(instructors, &ins)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return instructors, nil
}

// Update обновляет инструктора
func (r *Repository) Update(ctx context.Context, ins *domain.Instructor) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("instructors").
		Set("name", ins.Name).
		Set("bio", ins.Bio).
		Set("specialties", pq.Array(ins.Specialties)).
		Set("email", ins.Email).
		Set("phone", ins.Phone).
		Set("image_url", ins.ImageURL).
		Set("is_active", ins.IsActive).
		Where(squirrel.Eq{"id": ins.ID}).
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
		return ErrInstructorNotFound
	}

	return nil
}

// Delete удаляет инструктора (физическое удаление)
// Блокировка зависимых расписаний выполняется на уровне сервиса
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("instructors").
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
		return ErrInstructorNotFound
	}

	return nil
}
