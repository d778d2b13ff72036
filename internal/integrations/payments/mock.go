// Package payments изолирует работу с платёжным шлюзом.
// MockGateway имитирует процессинг: валидирует реквизиты и одобряет
// любую непросроченную карту, кроме тестового номера отказа.
package payments

import (
	"context"
	"fmt"
	"time"
	"unicode"
)

// declineCardNumber тестовый номер для проверки ветки отказа
const declineCardNumber = "4000000000000002"

// MockGateway мок платёжного шлюза
type MockGateway struct {
	logger Logger
	now    func() time.Time
}

// NewMockGateway создает мок платёжного шлюза
func NewMockGateway(logger Logger) *MockGateway {
	return &MockGateway{
		logger: logger,
		now:    time.Now,
	}
}

// Charge имитирует списание средств
func (g *MockGateway) Charge(_ context.Context, req ChargeRequest) (*ChargeResult, error) {
	if req.AmountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	if err := validateCard(req); err != nil {
		g.logger.Warn("Charge: card validation failed: %v", err)
		return nil, err
	}

	now := g.now()
	if req.ExpiryYear < now.Year() ||
		(req.ExpiryYear == now.Year() && req.ExpiryMonth < int(now.Month())) {
		return nil, ErrCardExpired
	}

	if req.CardNumber == declineCardNumber {
		g.logger.Warn("Charge: payment declined for card ending %s", last4(req.CardNumber))
		return nil, ErrPaymentDeclined
	}

	result := &ChargeResult{
		TransactionID: fmt.Sprintf("mock-%d", now.UnixNano()),
		CardLast4:     last4(req.CardNumber),
	}

	g.logger.Info("Charge: approved %d %s for card ending %s, tx=%s",
		req.AmountCents, req.Currency, result.CardLast4, result.TransactionID)

	return result, nil
}

// validateCard проверяет форму реквизитов (не подлинность)
func validateCard(req ChargeRequest) error {
	if !digitsOnly(req.CardNumber) || len(req.CardNumber) < 13 || len(req.CardNumber) > 19 {
		return fmt.Errorf("%w: card number", ErrInvalidCard)
	}
	if req.ExpiryMonth < 1 || req.ExpiryMonth > 12 {
		return fmt.Errorf("%w: expiry month", ErrInvalidCard)
	}
	if req.ExpiryYear < 2000 || req.ExpiryYear > 2100 {
		return fmt.Errorf("%w: expiry year", ErrInvalidCard)
	}
	if !digitsOnly(req.CVC) || len(req.CVC) < 3 || len(req.CVC) > 4 {
		return fmt.Errorf("%w: cvc", ErrInvalidCard)
	}
	return nil
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func last4(cardNumber string) string {
	if len(cardNumber) < 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}
