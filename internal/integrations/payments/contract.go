package payments

import "context"

// Gateway интерфейс платёжного шлюза
// Продовая реализация будет оборачивать SDK процессинга; сейчас
// используется MockGateway, одобряющий корректно оформленные карты
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
}

// ChargeRequest запрос на списание средств
type ChargeRequest struct {
	AmountCents int64  // Сумма в центах
	Currency    string // ISO 4217, например "USD"
	CardNumber  string
	ExpiryMonth int
	ExpiryYear  int
	CVC         string
	Description string
}

// ChargeResult результат списания
type ChargeResult struct {
	TransactionID string // Идентификатор на стороне шлюза
	CardLast4     string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
