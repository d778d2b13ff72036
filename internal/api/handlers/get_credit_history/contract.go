package get_credit_history

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

type CreditLedger interface {
	GetUserTransactions(ctx context.Context, userID int64) ([]*domain.CreditTransaction, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
