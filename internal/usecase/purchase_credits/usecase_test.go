package purchase_credits

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/integrations/payments"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

type fakeGateway struct {
	charges []payments.ChargeRequest
	err     error
}

func (f *fakeGateway) Charge(_ context.Context, req payments.ChargeRequest) (*payments.ChargeResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.charges = append(f.charges, req)
	return &payments.ChargeResult{TransactionID: "mock-1", CardLast4: "1111"}, nil
}

type fakeLedger struct {
	deltas  []ledger.Delta
	balance int
	err     error
}

func (f *fakeLedger) ApplyDelta(_ context.Context, delta ledger.Delta) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.deltas = append(f.deltas, delta)
	f.balance += delta.Amount
	return f.balance, nil
}

type fakeMetrics struct {
	issued int
}

func (f *fakeMetrics) AddCreditsIssued(_ string, amount int) { f.issued += amount }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest(packageID string) Request {
	return Request{
		UserID:    7,
		PackageID: packageID,
		Card: CardDetails{
			Number:      "4111111111111111",
			ExpiryMonth: 12,
			ExpiryYear:  2030,
			CVC:         "123",
		},
	}
}

func TestExecute_Success(t *testing.T) {
	gateway := &fakeGateway{}
	creditLedger := &fakeLedger{balance: 10}
	m := &fakeMetrics{}
	uc := NewUseCase(gateway, creditLedger, m, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest("regular"))

	require.NoError(t, err)
	assert.Equal(t, "regular", resp.PackageID)
	assert.Equal(t, 10, resp.CreditsAdded)
	assert.Equal(t, 90.0, resp.AmountCharged)
	assert.Equal(t, 20, resp.NewBalance)
	assert.Equal(t, "1111", resp.CardLast4)

	// Сумма уходит в шлюз в центах
	require.Len(t, gateway.charges, 1)
	assert.Equal(t, int64(9000), gateway.charges[0].AmountCents)
	assert.Equal(t, "USD", gateway.charges[0].Currency)

	require.Len(t, creditLedger.deltas, 1)
	assert.Equal(t, 10, creditLedger.deltas[0].Amount)
	assert.Equal(t, domain.TransactionCreditPurchase, creditLedger.deltas[0].Type)

	assert.Equal(t, 10, m.issued)
}

func TestExecute_AllPackages(t *testing.T) {
	tests := []struct {
		packageID   string
		wantCredits int
		wantCents   int64
	}{
		{"starter", 5, 5000},
		{"regular", 10, 9000},
		{"premium", 20, 15000},
	}

	for _, tt := range tests {
		t.Run(tt.packageID, func(t *testing.T) {
			gateway := &fakeGateway{}
			creditLedger := &fakeLedger{}
			uc := NewUseCase(gateway, creditLedger, &fakeMetrics{}, nopLogger{})

			resp, err := uc.Execute(context.Background(), validRequest(tt.packageID))

			require.NoError(t, err)
			assert.Equal(t, tt.wantCredits, resp.CreditsAdded)
			assert.Equal(t, tt.wantCents, gateway.charges[0].AmountCents)
		})
	}
}

func TestExecute_UnknownPackage(t *testing.T) {
	gateway := &fakeGateway{}
	creditLedger := &fakeLedger{}
	uc := NewUseCase(gateway, creditLedger, &fakeMetrics{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest("mega"))

	require.ErrorIs(t, err, ErrUnknownPackage)
	assert.Empty(t, gateway.charges, "gateway must not be called for unknown package")
	assert.Empty(t, creditLedger.deltas)
}

func TestExecute_GatewayFailures(t *testing.T) {
	tests := []struct {
		name       string
		gatewayErr error
		wantErr    error
	}{
		{"invalid card", payments.ErrInvalidCard, ErrInvalidCard},
		{"expired card", payments.ErrCardExpired, ErrInvalidCard},
		{"declined", payments.ErrPaymentDeclined, ErrPaymentDeclined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creditLedger := &fakeLedger{}
			uc := NewUseCase(&fakeGateway{err: tt.gatewayErr}, creditLedger, &fakeMetrics{}, nopLogger{})

			_, err := uc.Execute(context.Background(), validRequest("starter"))

			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, creditLedger.deltas, "no credits on failed payment")
		})
	}
}

func TestExecute_ProfileNotFound(t *testing.T) {
	uc := NewUseCase(&fakeGateway{}, &fakeLedger{err: ledger.ErrProfileNotFound}, &fakeMetrics{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest("starter"))

	require.ErrorIs(t, err, ErrProfileNotFound)
}
