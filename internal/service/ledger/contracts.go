package ledger

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// ProfileRepository интерфейс репозитория профилей
type ProfileRepository interface {
	GetByUserIDForUpdate(ctx context.Context, userID int64) (*domain.Profile, error)
	UpdateBalance(ctx context.Context, userID int64, newBalance int) error
}

// TransactionRepository интерфейс репозитория леджера
type TransactionRepository interface {
	Create(ctx context.Context, t *domain.CreditTransaction) (*domain.CreditTransaction, error)
	GetByUserID(ctx context.Context, userID int64) ([]*domain.CreditTransaction, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
