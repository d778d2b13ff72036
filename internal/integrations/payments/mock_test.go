package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}

func newTestGateway() *MockGateway {
	g := NewMockGateway(nopLogger{})
	g.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }
	return g
}

func validCharge() ChargeRequest {
	return ChargeRequest{
		AmountCents: 5000,
		Currency:    "USD",
		CardNumber:  "4111111111111111",
		ExpiryMonth: 12,
		ExpiryYear:  2030,
		CVC:         "123",
	}
}

func TestCharge_Approved(t *testing.T) {
	g := newTestGateway()

	result, err := g.Charge(context.Background(), validCharge())

	require.NoError(t, err)
	assert.NotEmpty(t, result.TransactionID)
	assert.Equal(t, "1111", result.CardLast4)
}

func TestCharge_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *ChargeRequest)
		wantErr error
	}{
		{"zero amount", func(r *ChargeRequest) { r.AmountCents = 0 }, ErrInvalidAmount},
		{"negative amount", func(r *ChargeRequest) { r.AmountCents = -100 }, ErrInvalidAmount},
		{"card number too short", func(r *ChargeRequest) { r.CardNumber = "411111" }, ErrInvalidCard},
		{"card number with letters", func(r *ChargeRequest) { r.CardNumber = "4111abcd11111111" }, ErrInvalidCard},
		{"empty card number", func(r *ChargeRequest) { r.CardNumber = "" }, ErrInvalidCard},
		{"month out of range", func(r *ChargeRequest) { r.ExpiryMonth = 13 }, ErrInvalidCard},
		{"zero month", func(r *ChargeRequest) { r.ExpiryMonth = 0 }, ErrInvalidCard},
		{"cvc too short", func(r *ChargeRequest) { r.CVC = "12" }, ErrInvalidCard},
		{"cvc with letters", func(r *ChargeRequest) { r.CVC = "12a" }, ErrInvalidCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCharge()
			tt.mutate(&req)

			_, err := newTestGateway().Charge(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCharge_Expiry(t *testing.T) {
	tests := []struct {
		name  string
		month int
		year  int
		ok    bool
	}{
		{"future year", 1, 2027, true},
		{"current month", 8, 2026, true},
		{"previous month of current year", 7, 2026, false},
		{"past year", 12, 2025, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCharge()
			req.ExpiryMonth = tt.month
			req.ExpiryYear = tt.year

			_, err := newTestGateway().Charge(context.Background(), req)

			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrCardExpired)
			}
		})
	}
}

func TestCharge_DeclineCard(t *testing.T) {
	req := validCharge()
	req.CardNumber = "4000000000000002"

	_, err := newTestGateway().Charge(context.Background(), req)

	assert.ErrorIs(t, err, ErrPaymentDeclined)
}
