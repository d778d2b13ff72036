package management

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	classTypeRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/classtype"
	instructorRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/instructor"
	profileRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/profile"
	scheduleRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
	"github.com/m04kA/SMC-StudioService/internal/service/management/models"
	"github.com/m04kA/SMC-StudioService/pkg/ptr"
)

type fakeClassTypeRepo struct {
	byID    map[int64]*domain.ClassType
	deleted []int64
}

func (f *fakeClassTypeRepo) Create(_ context.Context, ct *domain.ClassType) (*domain.ClassType, error) {
	cp := *ct
	cp.ID = 1
	return &cp, nil
}

func (f *fakeClassTypeRepo) GetByID(_ context.Context, id int64) (*domain.ClassType, error) {
	ct, ok := f.byID[id]
	if !ok {
		return nil, classTypeRepo.ErrClassTypeNotFound
	}
	cp := *ct
	return &cp, nil
}

func (f *fakeClassTypeRepo) Update(_ context.Context, ct *domain.ClassType) error {
	f.byID[ct.ID] = ct
	return nil
}

func (f *fakeClassTypeRepo) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeInstructorRepo struct {
	byID map[int64]*domain.Instructor
}

func (f *fakeInstructorRepo) Create(_ context.Context, ins *domain.Instructor) (*domain.Instructor, error) {
	cp := *ins
	cp.ID = 1
	return &cp, nil
}

func (f *fakeInstructorRepo) GetByID(_ context.Context, id int64) (*domain.Instructor, error) {
	ins, ok := f.byID[id]
	if !ok {
		return nil, instructorRepo.ErrInstructorNotFound
	}
	cp := *ins
	return &cp, nil
}

func (f *fakeInstructorRepo) Update(_ context.Context, ins *domain.Instructor) error {
	f.byID[ins.ID] = ins
	return nil
}

func (f *fakeInstructorRepo) Delete(_ context.Context, _ int64) error { return nil }

type fakeScheduleRepo struct {
	byID         map[int64]*domain.ClassSchedule
	countByType  int
	countByInstr int
	deleted      []int64
	updated      *domain.ClassSchedule
}

func (f *fakeScheduleRepo) Create(_ context.Context, s *domain.ClassSchedule) (*domain.ClassSchedule, error) {
	cp := *s
	cp.ID = 1
	return &cp, nil
}

func (f *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*domain.ClassSchedule, error) {
	return f.GetByIDForUpdate(context.Background(), id)
}

func (f *fakeScheduleRepo) GetByIDForUpdate(_ context.Context, id int64) (*domain.ClassSchedule, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeScheduleRepo) Update(_ context.Context, s *domain.ClassSchedule) error {
	f.updated = s
	f.byID[s.ID] = s
	return nil
}

func (f *fakeScheduleRepo) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeScheduleRepo) CountByClassType(_ context.Context, _ int64) (int, error) {
	return f.countByType, nil
}

func (f *fakeScheduleRepo) CountByInstructor(_ context.Context, _ int64) (int, error) {
	return f.countByInstr, nil
}

type fakeBookingRepo struct {
	confirmed []*domain.Booking
	history   []*domain.Booking // отменённые и посещённые
	cancelled []int64
	purged    []int64
}

func (f *fakeBookingRepo) GetByScheduleID(_ context.Context, _ int64, onlyConfirmed bool) ([]*domain.Booking, error) {
	if onlyConfirmed {
		return f.confirmed, nil
	}
	return append(append([]*domain.Booking{}, f.confirmed...), f.history...), nil
}

func (f *fakeBookingRepo) CountConfirmedBySchedule(_ context.Context, _ int64) (int, error) {
	return len(f.confirmed), nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64) error {
	f.cancelled = append(f.cancelled, id)
	return nil
}

func (f *fakeBookingRepo) DeleteBySchedule(_ context.Context, scheduleID int64) error {
	f.purged = append(f.purged, scheduleID)
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
	deltas []ledger.Delta
}

func (f *fakeLedger) ApplyDelta(_ context.Context, delta ledger.Delta) (int, error) {
	f.deltas = append(f.deltas, delta)
	return 0, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	svc         *Service
	classTypes  *fakeClassTypeRepo
	instructors *fakeInstructorRepo
	schedules   *fakeScheduleRepo
	bookings    *fakeBookingRepo
	ledger      *fakeLedger
}

func newFixture() *fixture {
	classTypes := &fakeClassTypeRepo{byID: map[int64]*domain.ClassType{
		2: {ID: 2, Name: "Yoga Flow", CreditCost: 2, DurationMinutes: 60, MaxCapacity: 10, IsActive: true},
	}}
	instructors := &fakeInstructorRepo{byID: map[int64]*domain.Instructor{
		3: {ID: 3, Name: "Anna", IsActive: true},
	}}
	schedules := &fakeScheduleRepo{byID: map[int64]*domain.ClassSchedule{
		5: {
			ID:            5,
			ClassTypeID:   2,
			InstructorID:  3,
			StartTime:     time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC),
			EndTime:       time.Date(2026, 9, 10, 19, 0, 0, 0, time.UTC),
			Capacity:      10,
			EnrolledCount: 6,
			IsActive:      true,
		},
	}}
	bookings := &fakeBookingRepo{}
	profiles := &fakeProfileRepo{profiles: map[int64]*domain.Profile{
		1: {UserID: 1, Role: domain.RoleAdmin},
		7: {UserID: 7, Role: domain.RoleStudent},
	}}
	creditLedger := &fakeLedger{}

	svc := NewService(classTypes, instructors, schedules, bookings, profiles, creditLedger, fakeTxManager{}, nopLogger{})
	return &fixture{
		svc:         svc,
		classTypes:  classTypes,
		instructors: instructors,
		schedules:   schedules,
		bookings:    bookings,
		ledger:      creditLedger,
	}
}

func TestApplyClassType_NonAdminDenied(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.ApplyClassType(context.Background(), models.ClassTypeRequest{
		RequestingUserID: 7,
		Action:           models.ActionCreate,
		Data:             &models.ClassTypeData{Name: ptr.Ptr("Pilates")},
	})

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestApplyClassType_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		data models.ClassTypeData
	}{
		{
			name: "missing name",
			data: models.ClassTypeData{CreditCost: ptr.Ptr(2), DurationMinutes: ptr.Ptr(60), MaxCapacity: ptr.Ptr(10)},
		},
		{
			name: "zero credit cost",
			data: models.ClassTypeData{Name: ptr.Ptr("Pilates"), CreditCost: ptr.Ptr(0), DurationMinutes: ptr.Ptr(60), MaxCapacity: ptr.Ptr(10)},
		},
		{
			name: "duration below minimum",
			data: models.ClassTypeData{Name: ptr.Ptr("Pilates"), CreditCost: ptr.Ptr(2), DurationMinutes: ptr.Ptr(10), MaxCapacity: ptr.Ptr(10)},
		},
		{
			name: "duration above maximum",
			data: models.ClassTypeData{Name: ptr.Ptr("Pilates"), CreditCost: ptr.Ptr(2), DurationMinutes: ptr.Ptr(240), MaxCapacity: ptr.Ptr(10)},
		},
		{
			name: "zero capacity",
			data: models.ClassTypeData{Name: ptr.Ptr("Pilates"), CreditCost: ptr.Ptr(2), DurationMinutes: ptr.Ptr(60), MaxCapacity: ptr.Ptr(0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture()

			_, err := fx.svc.ApplyClassType(context.Background(), models.ClassTypeRequest{
				RequestingUserID: 1,
				Action:           models.ActionCreate,
				Data:             &tt.data,
			})

			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestApplyClassType_CreateSuccess(t *testing.T) {
	fx := newFixture()

	result, err := fx.svc.ApplyClassType(context.Background(), models.ClassTypeRequest{
		RequestingUserID: 1,
		Action:           models.ActionCreate,
		Data: &models.ClassTypeData{
			Name:            ptr.Ptr("Pilates"),
			CreditCost:      ptr.Ptr(3),
			DurationMinutes: ptr.Ptr(45),
			MaxCapacity:     ptr.Ptr(8),
		},
	})

	require.NoError(t, err)
	require.NotNil(t, result.ClassType)
	assert.Equal(t, "Pilates", result.ClassType.Name)
	assert.True(t, result.ClassType.IsActive)
}

func TestApplyClassType_DeleteBlockedBySchedules(t *testing.T) {
	fx := newFixture()
	fx.schedules.countByType = 2

	_, err := fx.svc.ApplyClassType(context.Background(), models.ClassTypeRequest{
		RequestingUserID: 1,
		Action:           models.ActionDelete,
		ID:               ptr.Ptr(int64(2)),
	})

	require.ErrorIs(t, err, ErrHasDependentBookings)
	assert.Empty(t, fx.classTypes.deleted)
}

func TestApplyClassType_UnknownAction(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.ApplyClassType(context.Background(), models.ClassTypeRequest{
		RequestingUserID: 1,
		Action:           "upsert",
	})

	require.ErrorIs(t, err, ErrUnknownAction)
}

func TestApplySchedule_CapacityBelowEnrolledRejected(t *testing.T) {
	fx := newFixture()

	// В расписании 6 записанных, уменьшить вместимость до 4 нельзя
	_, err := fx.svc.ApplySchedule(context.Background(), models.ScheduleRequest{
		RequestingUserID: 1,
		Action:           models.ActionUpdate,
		ID:               ptr.Ptr(int64(5)),
		Data:             &models.ScheduleData{Capacity: ptr.Ptr(4)},
	})

	require.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, fx.schedules.updated)
}

func TestApplySchedule_CapacityDownToEnrolledAllowed(t *testing.T) {
	fx := newFixture()

	result, err := fx.svc.ApplySchedule(context.Background(), models.ScheduleRequest{
		RequestingUserID: 1,
		Action:           models.ActionUpdate,
		ID:               ptr.Ptr(int64(5)),
		Data:             &models.ScheduleData{Capacity: ptr.Ptr(6)},
	})

	require.NoError(t, err)
	assert.Equal(t, 6, result.Schedule.Capacity)
}

func TestApplySchedule_CreateWithInactiveRefsRejected(t *testing.T) {
	fx := newFixture()
	fx.classTypes.byID[2].IsActive = false

	start := time.Date(2026, 9, 15, 18, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	_, err := fx.svc.ApplySchedule(context.Background(), models.ScheduleRequest{
		RequestingUserID: 1,
		Action:           models.ActionCreate,
		Data: &models.ScheduleData{
			ClassTypeID:  ptr.Ptr(int64(2)),
			InstructorID: ptr.Ptr(int64(3)),
			StartTime:    &start,
			EndTime:      &end,
			Capacity:     ptr.Ptr(10),
		},
	})

	require.ErrorIs(t, err, ErrClassTypeInactive)
}

func TestApplySchedule_CreateEndBeforeStartRejected(t *testing.T) {
	fx := newFixture()

	start := time.Date(2026, 9, 15, 18, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	_, err := fx.svc.ApplySchedule(context.Background(), models.ScheduleRequest{
		RequestingUserID: 1,
		Action:           models.ActionCreate,
		Data: &models.ScheduleData{
			ClassTypeID:  ptr.Ptr(int64(2)),
			InstructorID: ptr.Ptr(int64(3)),
			StartTime:    &start,
			EndTime:      &end,
			Capacity:     ptr.Ptr(10),
		},
	})

	require.ErrorIs(t, err, ErrValidation)
}

func TestApplySchedule_DeleteBlockedWithoutForce(t *testing.T) {
	fx := newFixture()
	fx.bookings.confirmed = []*domain.Booking{
		{ID: 11, UserID: 7, ClassScheduleID: 5, Status: domain.StatusConfirmed, CreditsUsed: 2},
	}

	_, err := fx.svc.ApplySchedule(context.Background(), models.ScheduleRequest{
		RequestingUserID: 1,
		Action:           models.ActionDelete,
		ID:               ptr.Ptr(int64(5)),
	})

	require.ErrorIs(t, err, ErrHasDependentBookings)
	assert.Empty(t, fx.schedules.deleted)
	assert.Empty(t, fx.bookings.cancelled)
}

func TestApplySchedule_ForceDeleteCascades(t *testing.T) {
	fx := newFixture()
	fx.bookings.confirmed = []*domain.Booking{
		{ID: 11, UserID: 7, ClassScheduleID: 5, Status: domain.StatusConfirmed, CreditsUsed: 2},
		{ID: 12, UserID: 8, ClassScheduleID: 5, Status: domain.StatusConfirmed, CreditsUsed: 3},
	}

	result, err := fx.svc.ApplySchedule(context.Background(), models.ScheduleRequest{
		RequestingUserID: 1,
		Action:           models.ActionDelete,
		ID:               ptr.Ptr(int64(5)),
		Force:            true,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.CancelledBookings)
	assert.Equal(t, []int64{11, 12}, fx.bookings.cancelled)
	assert.Equal(t, []int64{5}, fx.bookings.purged, "booking rows must be removed before the schedule")
	assert.Equal(t, []int64{5}, fx.schedules.deleted)

	// Каждому участнику возвращены его кредиты
	require.Len(t, fx.ledger.deltas, 2)
	assert.Equal(t, int64(7), fx.ledger.deltas[0].UserID)
	assert.Equal(t, 2, fx.ledger.deltas[0].Amount)
	assert.Equal(t, domain.TransactionBookingRefund, fx.ledger.deltas[0].Type)
	assert.Equal(t, int64(8), fx.ledger.deltas[1].UserID)
	assert.Equal(t, 3, fx.ledger.deltas[1].Amount)
	require.NotNil(t, fx.ledger.deltas[0].AdminUserID)
	assert.Equal(t, int64(1), *fx.ledger.deltas[0].AdminUserID)
}

func TestApplySchedule_DeleteEmptyScheduleWithoutForce(t *testing.T) {
	fx := newFixture()

	result, err := fx.svc.ApplySchedule(context.Background(), models.ScheduleRequest{
		RequestingUserID: 1,
		Action:           models.ActionDelete,
		ID:               ptr.Ptr(int64(5)),
	})

	require.NoError(t, err)
	assert.Zero(t, result.CancelledBookings)
	assert.Equal(t, []int64{5}, fx.bookings.purged)
	assert.Equal(t, []int64{5}, fx.schedules.deleted)
}

func TestApplySchedule_DeleteWithOnlyCancelledBookings(t *testing.T) {
	// Отменённые бронирования не блокируют удаление, но их строки всё ещё
	// ссылаются на расписание и должны быть удалены вместе с ним
	fx := newFixture()
	fx.bookings.history = []*domain.Booking{
		{ID: 13, UserID: 7, ClassScheduleID: 5, Status: domain.StatusCancelled, CreditsUsed: 2},
	}

	result, err := fx.svc.ApplySchedule(context.Background(), models.ScheduleRequest{
		RequestingUserID: 1,
		Action:           models.ActionDelete,
		ID:               ptr.Ptr(int64(5)),
	})

	require.NoError(t, err)
	assert.Zero(t, result.CancelledBookings)
	assert.Empty(t, fx.bookings.cancelled, "already cancelled bookings are not re-cancelled")
	assert.Empty(t, fx.ledger.deltas, "no refunds for already cancelled bookings")
	assert.Equal(t, []int64{5}, fx.bookings.purged)
	assert.Equal(t, []int64{5}, fx.schedules.deleted)
}

func TestApplyInstructor_CreateSuccess(t *testing.T) {
	fx := newFixture()

	result, err := fx.svc.ApplyInstructor(context.Background(), models.InstructorRequest{
		RequestingUserID: 1,
		Action:           models.ActionCreate,
		Data: &models.InstructorData{
			Name:        ptr.Ptr("Boris"),
			Specialties: []string{"pilates", "stretching"},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, result.Instructor)
	assert.Equal(t, "Boris", result.Instructor.Name)
	assert.True(t, result.Instructor.IsActive)
}
