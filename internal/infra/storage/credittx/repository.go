// Package credittx хранит append-only леджер кредитных транзакций.
// Репозиторий намеренно не имеет Update и Delete: записанная строка
// леджера неизменна.
package credittx

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudioService/pkg/psqlbuilder"
)

var transactionColumns = []string{
	"id",
	"user_id",
	"amount",
	"transaction_type",
	"description",
	"booking_id",
	"admin_user_id",
	"created_at",
}

// Repository репозиторий леджера кредитных транзакций
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория леджера
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в леджер
// Вызывается только леджер-сервисом внутри транзакции вместе с обновлением
// баланса профиля
func (r *Repository) Create(ctx context.Context, t *domain.CreditTransaction) (*domain.CreditTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("credit_transactions").
		Columns("user_id", "amount", "transaction_type", "description", "booking_id", "admin_user_id").
		Values(t.UserID, t.Amount, t.Type, t.Description, t.BookingID, t.AdminUserID).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&t.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time

	return t, nil
}

// GetByUserID получает историю транзакций пользователя (новые первыми)
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.CreditTransaction, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(transactionColumns...).
		From("credit_transactions").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC, id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	transactions := make([]*domain.CreditTransaction, 0)

	for rows.Next() {
		var t domain.CreditTransaction
		var createdAt sql.NullTime

		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Amount,
			&t.Type,
			&t.Description,
			&t.BookingID,
			&t.AdminUserID,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByUserID - scan row: %w", ErrScanRow, err)
		}

		t.CreatedAt = createdAt.Time
		transactions = append(transactions, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - rows error: %w", ErrScanRow, err)
	}

	return transactions, nil
}

// SumByUserID возвращает сумму всех транзакций пользователя
// Используется проверками консистентности: сумма обязана совпадать
// с credit_balance профиля
func (r *Repository) SumByUserID(ctx context.Context, userID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(amount), 0)").
		From("credit_transactions").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumByUserID - build select query: %w", ErrBuildQuery, err)
	}

	var sum int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%w: SumByUserID - scan sum: %w", ErrScanRow, err)
	}

	return sum, nil
}
