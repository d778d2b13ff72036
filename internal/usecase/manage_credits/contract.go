package manage_credits

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

// ProfileRepository интерфейс репозитория профилей
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
}

// CreditLedger интерфейс кредитного леджера
type CreditLedger interface {
	ApplyDelta(ctx context.Context, delta ledger.Delta) (int, error)
}

// MetricsCollector интерфейс для бизнес-метрик
type MetricsCollector interface {
	AddCreditsIssued(transactionType string, amount int)
	AddCreditsSpent(transactionType string, amount int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
