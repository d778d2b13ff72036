package register_profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	profileRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

type fakeProfileRepo struct {
	existing map[int64]bool
	created  *domain.Profile
}

func (f *fakeProfileRepo) Create(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	if f.existing[p.UserID] {
		return nil, profileRepo.ErrProfileExists
	}
	cp := *p
	cp.ID = 1
	f.created = &cp
	return &cp, nil
}

type fakeLedger struct {
	deltas []ledger.Delta
}

func (f *fakeLedger) ApplyDelta(_ context.Context, delta ledger.Delta) (int, error) {
	f.deltas = append(f.deltas, delta)
	return delta.Amount, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	issued int
}

func (f *fakeMetrics) AddCreditsIssued(_ string, amount int) { f.issued += amount }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(existing map[int64]bool) (*UseCase, *fakeProfileRepo, *fakeLedger, *fakeMetrics) {
	profiles := &fakeProfileRepo{existing: existing}
	creditLedger := &fakeLedger{}
	m := &fakeMetrics{}
	return NewUseCase(profiles, creditLedger, fakeTxManager{}, m, nopLogger{}), profiles, creditLedger, m
}

func TestExecute_Success(t *testing.T) {
	uc, profiles, creditLedger, m := newTestUseCase(nil)

	resp, err := uc.Execute(context.Background(), Request{
		UserID:   7,
		Email:    "  Jane@Example.COM ",
		FullName: " Jane Doe ",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ProfileID)
	assert.Equal(t, "jane@example.com", resp.Email)
	assert.Equal(t, "Jane Doe", resp.FullName)
	assert.Equal(t, string(domain.RoleStudent), resp.Role)
	assert.Equal(t, domain.WelcomeCredits, resp.WelcomeCredits)
	assert.Equal(t, domain.WelcomeCredits, resp.CreditBalance)

	require.NotNil(t, profiles.created)
	assert.Equal(t, domain.RoleStudent, profiles.created.Role)

	require.Len(t, creditLedger.deltas, 1)
	delta := creditLedger.deltas[0]
	assert.Equal(t, domain.WelcomeCredits, delta.Amount)
	assert.Equal(t, domain.TransactionCreditAdded, delta.Type)

	assert.Equal(t, domain.WelcomeCredits, m.issued)
}

func TestExecute_AlreadyRegistered(t *testing.T) {
	uc, _, creditLedger, m := newTestUseCase(map[int64]bool{7: true})

	_, err := uc.Execute(context.Background(), Request{
		UserID:   7,
		Email:    "jane@example.com",
		FullName: "Jane Doe",
	})

	require.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.Empty(t, creditLedger.deltas, "no welcome credits for duplicate registration")
	assert.Zero(t, m.issued)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"empty email", Request{UserID: 7, FullName: "Jane"}},
		{"email without at sign", Request{UserID: 7, Email: "jane.example.com", FullName: "Jane"}},
		{"empty name", Request{UserID: 7, Email: "jane@example.com"}},
		{"blank name", Request{UserID: 7, Email: "jane@example.com", FullName: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, profiles, _, _ := newTestUseCase(nil)

			_, err := uc.Execute(context.Background(), tt.req)

			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, profiles.created)
		})
	}
}
