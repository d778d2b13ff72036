package purchase_credits

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/integrations/payments"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

// PaymentGateway интерфейс платёжного шлюза
type PaymentGateway interface {
	Charge(ctx context.Context, req payments.ChargeRequest) (*payments.ChargeResult, error)
}

// CreditLedger интерфейс кредитного леджера
type CreditLedger interface {
	ApplyDelta(ctx context.Context, delta ledger.Delta) (int, error)
}

// MetricsCollector интерфейс для бизнес-метрик
type MetricsCollector interface {
	AddCreditsIssued(transactionType string, amount int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
