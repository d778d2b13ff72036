package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	profileRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/profile"
)

// fakeProfileRepo хранит профили в памяти
type fakeProfileRepo struct {
	profiles map[int64]*domain.Profile
}

func (f *fakeProfileRepo) GetByUserIDForUpdate(_ context.Context, userID int64) (*domain.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) UpdateBalance(_ context.Context, userID int64, newBalance int) error {
	f.profiles[userID].CreditBalance = newBalance
	return nil
}

// fakeTxRepo записывает созданные транзакции
type fakeTxRepo struct {
	created []*domain.CreditTransaction
}

func (f *fakeTxRepo) Create(_ context.Context, t *domain.CreditTransaction) (*domain.CreditTransaction, error) {
	f.created = append(f.created, t)
	return t, nil
}

func (f *fakeTxRepo) GetByUserID(_ context.Context, userID int64) ([]*domain.CreditTransaction, error) {
	var out []*domain.CreditTransaction
	for _, t := range f.created {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// fakeTxManager выполняет fn без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(balance int) (*Service, *fakeProfileRepo, *fakeTxRepo) {
	profiles := &fakeProfileRepo{profiles: map[int64]*domain.Profile{
		1: {ID: 1, UserID: 1, CreditBalance: balance},
	}}
	txs := &fakeTxRepo{}
	return NewService(profiles, txs, fakeTxManager{}, nopLogger{}), profiles, txs
}

func TestApplyDelta_Validation(t *testing.T) {
	svc, _, txs := newTestService(10)

	tests := []struct {
		name    string
		delta   Delta
		wantErr error
	}{
		{
			name:    "zero amount",
			delta:   Delta{UserID: 1, Amount: 0, Type: domain.TransactionCreditAdded},
			wantErr: ErrZeroAmount,
		},
		{
			name:    "unknown type",
			delta:   Delta{UserID: 1, Amount: 5, Type: "refund"},
			wantErr: ErrInvalidType,
		},
		{
			name:    "credit type with negative amount",
			delta:   Delta{UserID: 1, Amount: -5, Type: domain.TransactionCreditAdded},
			wantErr: ErrAmountSignMismatch,
		},
		{
			name:    "purchase with negative amount",
			delta:   Delta{UserID: 1, Amount: -5, Type: domain.TransactionCreditPurchase},
			wantErr: ErrAmountSignMismatch,
		},
		{
			name:    "payment with positive amount",
			delta:   Delta{UserID: 1, Amount: 5, Type: domain.TransactionBookingPayment},
			wantErr: ErrAmountSignMismatch,
		},
		{
			name:    "deduction with positive amount",
			delta:   Delta{UserID: 1, Amount: 5, Type: domain.TransactionCreditDeducted},
			wantErr: ErrAmountSignMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ApplyDelta(context.Background(), tt.delta)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Отклонённые дельты не должны порождать записей в леджере
	assert.Empty(t, txs.created)
}

func TestApplyDelta_InsufficientCredits(t *testing.T) {
	svc, profiles, txs := newTestService(3)

	_, err := svc.ApplyDelta(context.Background(), Delta{
		UserID: 1,
		Amount: -5,
		Type:   domain.TransactionBookingPayment,
	})

	require.ErrorIs(t, err, ErrInsufficientCredits)
	assert.Equal(t, 3, profiles.profiles[1].CreditBalance)
	assert.Empty(t, txs.created)
}

func TestApplyDelta_BalanceToExactlyZero(t *testing.T) {
	svc, profiles, _ := newTestService(5)

	newBalance, err := svc.ApplyDelta(context.Background(), Delta{
		UserID: 1,
		Amount: -5,
		Type:   domain.TransactionBookingPayment,
	})

	require.NoError(t, err)
	assert.Equal(t, 0, newBalance)
	assert.Equal(t, 0, profiles.profiles[1].CreditBalance)
}

func TestApplyDelta_WritesLedgerAndBalance(t *testing.T) {
	svc, profiles, txs := newTestService(10)

	bookingID := int64(42)
	newBalance, err := svc.ApplyDelta(context.Background(), Delta{
		UserID:    1,
		Amount:    -4,
		Type:      domain.TransactionBookingPayment,
		BookingID: &bookingID,
	})

	require.NoError(t, err)
	assert.Equal(t, 6, newBalance)
	assert.Equal(t, 6, profiles.profiles[1].CreditBalance)

	require.Len(t, txs.created, 1)
	entry := txs.created[0]
	assert.Equal(t, int64(1), entry.UserID)
	assert.Equal(t, -4, entry.Amount)
	assert.Equal(t, domain.TransactionBookingPayment, entry.Type)
	require.NotNil(t, entry.BookingID)
	assert.Equal(t, bookingID, *entry.BookingID)
}

func TestApplyDelta_ProfileNotFound(t *testing.T) {
	svc, _, _ := newTestService(10)

	_, err := svc.ApplyDelta(context.Background(), Delta{
		UserID: 99,
		Amount: 5,
		Type:   domain.TransactionCreditAdded,
	})

	assert.ErrorIs(t, err, ErrProfileNotFound)
}
