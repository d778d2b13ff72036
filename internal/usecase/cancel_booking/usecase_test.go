package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/booking"
	profileRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/profile"
	scheduleRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

type fakeBookingRepo struct {
	booking   *domain.Booking
	cancelled []int64
}

func (f *fakeBookingRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *f.booking
	return &cp, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

type fakeScheduleRepo struct {
	schedule    *domain.ClassSchedule
	decremented int
}

func (f *fakeScheduleRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.ClassSchedule, error) {
	if f.schedule == nil || f.schedule.ID != id {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	cp := *f.schedule
	return &cp, nil
}

func (f *fakeScheduleRepo) DecrementEnrolled(_ context.Context, _ int64) error {
	f.decremented++
	return nil
}

type fakeProfileRepo struct {
	profiles map[int64]*domain.Profile
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID int64) (*domain.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, profileRepo.ErrProfileNotFound
	}
	return p, nil
}

type fakeLedger struct {
	deltas  []ledger.Delta
	balance int
}

func (f *fakeLedger) ApplyDelta(_ context.Context, delta ledger.Delta) (int, error) {
	f.deltas = append(f.deltas, delta)
	f.balance += delta.Amount
	return f.balance, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeMetrics struct {
	cancelled     map[string]int
	creditsIssued int
}

func (f *fakeMetrics) IncBookingCancelled(initiator string) {
	if f.cancelled == nil {
		f.cancelled = map[string]int{}
	}
	f.cancelled[initiator]++
}

func (f *fakeMetrics) AddCreditsIssued(_ string, amount int) { f.creditsIssued += amount }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc        *UseCase
	bookings  *fakeBookingRepo
	schedules *fakeScheduleRepo
	ledger    *fakeLedger
	metrics   *fakeMetrics
}

func newFixture(booking *domain.Booking, classStart time.Time) *fixture {
	bookings := &fakeBookingRepo{booking: booking}
	schedules := &fakeScheduleRepo{schedule: &domain.ClassSchedule{
		ID:            5,
		StartTime:     classStart,
		EndTime:       classStart.Add(time.Hour),
		Capacity:      10,
		EnrolledCount: 6,
		IsActive:      true,
	}}
	profiles := &fakeProfileRepo{profiles: map[int64]*domain.Profile{
		7:  {UserID: 7, Role: domain.RoleStudent},
		99: {UserID: 99, Role: domain.RoleAdmin},
	}}
	creditLedger := &fakeLedger{balance: 5}
	m := &fakeMetrics{}

	uc := NewUseCase(bookings, schedules, profiles, creditLedger, fakeTxManager{}, m, nopLogger{})
	uc.now = func() time.Time { return testNow }

	return &fixture{uc: uc, bookings: bookings, schedules: schedules, ledger: creditLedger, metrics: m}
}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:              10,
		UserID:          7,
		ClassScheduleID: 5,
		Status:          domain.StatusConfirmed,
		CreditsUsed:     3,
	}
}

func TestExecute_OwnerCancelsInsideWindow(t *testing.T) {
	fx := newFixture(confirmedBooking(), testNow.Add(3*time.Hour))

	resp, err := fx.uc.Execute(context.Background(), Request{BookingID: 10, RequestingUserID: 7})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, 3, resp.CreditsRefunded)
	assert.Equal(t, 8, resp.NewBalance)

	assert.Equal(t, []int64{10}, fx.bookings.cancelled)
	assert.Equal(t, 1, fx.schedules.decremented)

	require.Len(t, fx.ledger.deltas, 1)
	delta := fx.ledger.deltas[0]
	assert.Equal(t, 3, delta.Amount)
	assert.Equal(t, domain.TransactionBookingRefund, delta.Type)
	assert.Nil(t, delta.AdminUserID)

	assert.Equal(t, 1, fx.metrics.cancelled["user"])
	assert.Equal(t, 3, fx.metrics.creditsIssued)
}

func TestExecute_WindowBoundary(t *testing.T) {
	tests := []struct {
		name       string
		classStart time.Time
		wantErr    error
	}{
		{
			name:       "exactly two hours before start",
			classStart: testNow.Add(domain.CancellationNoticeHours * time.Hour),
		},
		{
			name:       "one second inside the deadline",
			classStart: testNow.Add(domain.CancellationNoticeHours*time.Hour - time.Second),
			wantErr:    ErrWindowClosed,
		},
		{
			name:       "class already started",
			classStart: testNow.Add(-time.Hour),
			wantErr:    ErrWindowClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(confirmedBooking(), tt.classStart)

			_, err := fx.uc.Execute(context.Background(), Request{BookingID: 10, RequestingUserID: 7})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, fx.bookings.cancelled)
				assert.Empty(t, fx.ledger.deltas)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestExecute_AdminBypassesWindow(t *testing.T) {
	// До занятия меньше двух часов, но отменяет администратор
	fx := newFixture(confirmedBooking(), testNow.Add(30*time.Minute))

	resp, err := fx.uc.Execute(context.Background(), Request{BookingID: 10, RequestingUserID: 99})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.CreditsRefunded)

	require.Len(t, fx.ledger.deltas, 1)
	delta := fx.ledger.deltas[0]
	assert.Equal(t, int64(7), delta.UserID, "refund goes to the booking owner")
	require.NotNil(t, delta.AdminUserID)
	assert.Equal(t, int64(99), *delta.AdminUserID)

	assert.Equal(t, 1, fx.metrics.cancelled["admin"])
}

func TestExecute_StrangerDenied(t *testing.T) {
	fx := newFixture(confirmedBooking(), testNow.Add(3*time.Hour))
	fx.uc.profiles.(*fakeProfileRepo).profiles[8] = &domain.Profile{UserID: 8, Role: domain.RoleStudent}

	_, err := fx.uc.Execute(context.Background(), Request{BookingID: 10, RequestingUserID: 8})

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, fx.bookings.cancelled)
}

func TestExecute_TerminalStatuses(t *testing.T) {
	tests := []struct {
		status  domain.BookingStatus
		wantErr error
	}{
		{domain.StatusCancelled, ErrAlreadyCancelled},
		{domain.StatusAttended, ErrNotCancellable},
		{domain.StatusNoShow, ErrNotCancellable},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := confirmedBooking()
			b.Status = tt.status
			fx := newFixture(b, testNow.Add(3*time.Hour))

			_, err := fx.uc.Execute(context.Background(), Request{BookingID: 10, RequestingUserID: 7})

			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, fx.ledger.deltas)
		})
	}
}

func TestExecute_BookingNotFound(t *testing.T) {
	fx := newFixture(confirmedBooking(), testNow.Add(3*time.Hour))

	_, err := fx.uc.Execute(context.Background(), Request{BookingID: 404, RequestingUserID: 7})

	require.ErrorIs(t, err, ErrBookingNotFound)
}
