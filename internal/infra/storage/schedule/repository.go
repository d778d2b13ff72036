package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/psqlbuilder"
)

var scheduleColumns = []string{
	"id",
	"class_type_id",
	"instructor_id",
	"start_time",
	"end_time",
	"capacity",
	"enrolled_count",
	"is_active",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с расписаниями занятий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое расписание
func (r *Repository) Create(ctx context.Context, s *domain.ClassSchedule) (*domain.ClassSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("class_schedules").
		Columns(
			"class_type_id",
			"instructor_id",
			"start_time",
			"end_time",
			"capacity",
			"is_active",
			"notes",
		).
		Values(
			s.ClassTypeID,
			s.InstructorID,
			s.StartTime,
			s.EndTime,
			s.Capacity,
			s.IsActive,
			s.Notes,
		).
		Suffix("RETURNING id, enrolled_count, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.EnrolledCount, &createdAt, &updatedAt)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает расписание по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ClassSchedule, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает расписание по ID с блокировкой строки (FOR UPDATE)
// Проверка вместимости и инкремент enrolled_count обязаны быть
// сериализованы по расписанию, иначе два конкурентных бронирования
// могут занять одно последнее место
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.ClassSchedule, error) {
	return r.getByID(ctx, id, true)
}

func (r *Repository) getByID(ctx context.Context, id int64, forUpdate bool) (*domain.ClassSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From("class_schedules").
		Where(squirrel.Eq{"id": id})

	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var s domain.ClassSchedule
	var startTime, endTime, createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.ClassTypeID,
		&s.InstructorID,
		&startTime,
		&endTime,
		&s.Capacity,
		&s.EnrolledCount,
		&s.IsActive,
		&s.Notes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan schedule: %w", ErrScanRow, err)
	}

	s.StartTime = startTime.Time
	s.EndTime = endTime.Time
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// List получает расписания с фильтрацией
func (r *Repository) List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.ClassSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From("class_schedules").
		OrderBy("start_time ASC")

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_time": *filter.To})
	}
	if filter.ClassTypeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"class_type_id": *filter.ClassTypeID})
	}
	if filter.InstructorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"instructor_id": *filter.InstructorID})
	}
	if filter.OnlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}
	if filter.OnlyAvailable {
		selectBuilder = selectBuilder.Where(squirrel.Expr("enrolled_count < capacity"))
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

	return r.scanSchedules(rows)
}

// Update обновляет атрибуты расписания
// enrolled_count этим методом не меняется: он принадлежит booking engine
func (r *Repository) Update(ctx context.Context, s *domain.ClassSchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("class_schedules").
		Set("class_type_id", s.ClassTypeID).
		Set("instructor_id", s.InstructorID).
		Set("start_time", s.StartTime).
		Set("end_time", s.EndTime).
		Set("capacity", s.Capacity).
		Set("is_active", s.IsActive).
		Set("notes", s.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
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
		return ErrScheduleNotFound
	}

	return nil
}

// IncrementEnrolled атомарно занимает одно место в расписании
// Проверка вместимости входит в условие UPDATE: если мест нет,
// запрос не затрагивает ни одной строки и возвращается ErrScheduleFull
func (r *Repository) IncrementEnrolled(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("class_schedules").
		Set("enrolled_count", squirrel.Expr("enrolled_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("enrolled_count < capacity")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: IncrementEnrolled - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementEnrolled - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementEnrolled - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleFull
	}

	return nil
}

// DecrementEnrolled атомарно освобождает одно место в расписании
// Значение не опускается ниже нуля
func (r *Repository) DecrementEnrolled(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("class_schedules").
		Set("enrolled_count", squirrel.Expr("GREATEST(enrolled_count - 1, 0)")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DecrementEnrolled - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DecrementEnrolled - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DecrementEnrolled - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// Delete удаляет расписание (физическое удаление)
// Блокировка зависимых бронирований выполняется на уровне сервиса
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("class_schedules").
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
		return ErrScheduleNotFound
	}

	return nil
}

// CountByClassType возвращает число расписаний, ссылающихся на тип класса
func (r *Repository) CountByClassType(ctx context.Context, classTypeID int64) (int, error) {
	return r.countBy(ctx, "class_type_id", classTypeID)
}

// CountByInstructor возвращает число расписаний, ссылающихся на инструктора
func (r *Repository) CountByInstructor(ctx context.Context, instructorID int64) (int, error) {
	return r.countBy(ctx, "instructor_id", instructorID)
}

func (r *Repository) countBy(ctx context.Context, column string, id int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("class_schedules").
		Where(squirrel.Eq{column: id}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: countBy - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: countBy - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// scanSchedules сканирует результаты запроса в слайс расписаний
func (r *Repository) scanSchedules(rows *sql.Rows) ([]*domain.ClassSchedule, error) {
	schedules := make([]*domain.ClassSchedule, 0)

	for rows.Next() {
		var s domain.ClassSchedule
		var startTime, endTime, createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.ClassTypeID,
			&s.InstructorID,
			&startTime,
			&endTime,
			&s.Capacity,
			&s.EnrolledCount,
			&s.IsActive,
			&s.Notes,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSchedules - scan row: %w", ErrScanRow, err)
		}

		s.StartTime = startTime.Time
		s.EndTime = endTime.Time
		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		schedules = append(schedules, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSchedules - rows error: %w", ErrScanRow, err)
	}

	return schedules, nil
}
