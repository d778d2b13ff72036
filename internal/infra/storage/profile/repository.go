package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/psqlbuilder"
)

// pqUniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const pqUniqueViolation = "23505"

var profileColumns = []string{
	"id",
	"user_id",
	"email",
	"full_name",
	"phone",
	"role",
	"credit_balance",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с профилями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория профилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый профиль
func (r *Repository) Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("profiles").
		Columns("user_id", "email", "full_name", "phone", "role", "credit_balance").
		Values(p.UserID, p.Email, p.FullName, p.Phone, p.Role, p.CreditBalance).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrProfileExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByUserID получает профиль по идентификатору пользователя
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	return r.getByUserID(ctx, userID, false)
}

// GetByUserIDForUpdate получает профиль по идентификатору пользователя
// с блокировкой строки (FOR UPDATE)
// Должен вызываться только внутри транзакции: проверка баланса и его
// изменение обязаны быть сериализованы по профилю
func (r *Repository) GetByUserIDForUpdate(ctx context.Context, userID int64) (*domain.Profile, error) {
	return r.getByUserID(ctx, userID, true)
}

func (r *Repository) getByUserID(ctx context.Context, userID int64, forUpdate bool) (*domain.Profile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"user_id": userID})

	if forUpdate && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %w", ErrBuildQuery, err)
	}

	var p domain.Profile
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.UserID,
		&p.Email,
		&p.FullName,
		&p.Phone,
		&p.Role,
		&p.CreditBalance,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan profile: %w", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// UpdateBalance устанавливает новое значение баланса профиля
// Вызывается только леджером внутри транзакции вместе со вставкой
// строки в credit_transactions
func (r *Repository) UpdateBalance(ctx context.Context, userID int64, newBalance int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("profiles").
		Set("credit_balance", newBalance).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateBalance - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateBalance - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateBalance - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrProfileNotFound
	}

	return nil
}
