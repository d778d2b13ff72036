// Package create_booking реализует сценарий записи на занятие.
// Место и кредиты резервируются атомарно: либо появляются и бронирование,
// и списание, и инкремент занятых мест, либо ничего.
package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
	"github.com/m04kA/SMC-StudioService/pkg/ptr"
)

// UseCase сценарий создания бронирования
type UseCase struct {
	schedules    ScheduleRepository
	classTypes   ClassTypeRepository
	bookings     BookingRepository
	creditLedger CreditLedger
	txManager    TransactionManager
	metrics      MetricsCollector
	logger       Logger
	now          func() time.Time
}

// NewUseCase создает новый экземпляр сценария
func NewUseCase(
	schedules ScheduleRepository,
	classTypes ClassTypeRepository,
	bookings BookingRepository,
	creditLedger CreditLedger,
	txManager TransactionManager,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		schedules:    schedules,
		classTypes:   classTypes,
		bookings:     bookings,
		creditLedger: creditLedger,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

// Execute создает бронирование для пользователя
//
// Порядок внутри сериализуемой транзакции:
//  1. Блокируем строку расписания и проверяем доступность занятия
//  2. Резервируем место охраняемым инкрементом (enrolled_count < capacity)
//  3. Создаем бронирование со стоимостью, зафиксированной на момент записи
//  4. Списываем кредиты через леджер (блокирует строку профиля)
//
// Дедлоки исключены единым порядком блокировок: расписание, затем профиль
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	var (
		booking    *domain.Booking
		classType  *domain.ClassType
		schedule   *domain.ClassSchedule
		newBalance int
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		sched, err := uc.schedules.GetByIDForUpdate(txCtx, req.ClassScheduleID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrScheduleNotFound
			}
			return fmt.Errorf("%w: Execute - get schedule: %w", ErrInternal, err)
		}
		schedule = sched

		if !sched.IsActive {
			return ErrScheduleInactive
		}
		if sched.HasStarted(uc.now()) {
			return ErrClassInPast
		}
		if sched.IsFull() {
			return ErrClassFull
		}

		ct, err := uc.classTypes.GetByID(txCtx, sched.ClassTypeID)
		if err != nil {
			return fmt.Errorf("%w: Execute - get class type: %w", ErrInternal, err)
		}
		classType = ct

		// Охраняемый инкремент - финальная защита от переполнения:
		// даже при гонке двух транзакций место получит только одна
		if err := uc.schedules.IncrementEnrolled(txCtx, sched.ID); err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleFull) {
				return ErrClassFull
			}
			return fmt.Errorf("%w: Execute - increment enrolled: %w", ErrInternal, err)
		}

		b, err := uc.bookings.Create(txCtx, &domain.Booking{
			UserID:          req.UserID,
			ClassScheduleID: sched.ID,
			Status:          domain.StatusConfirmed,
			CreditsUsed:     ct.CreditCost,
			BookingTime:     uc.now(),
		})
		if err != nil {
			return fmt.Errorf("%w: Execute - create booking: %w", ErrInternal, err)
		}
		booking = b

		balance, err := uc.creditLedger.ApplyDelta(txCtx, ledger.Delta{
			UserID:      req.UserID,
			Amount:      -ct.CreditCost,
			Type:        domain.TransactionBookingPayment,
			Description: ptr.Ptr(fmt.Sprintf("Booking: %s", ct.Name)),
			BookingID:   &b.ID,
		})
		if err != nil {
			if errors.Is(err, ledger.ErrInsufficientCredits) {
				return ErrInsufficientCredits
			}
			if errors.Is(err, ledger.ErrProfileNotFound) {
				return ErrProfileNotFound
			}
			return fmt.Errorf("%w: Execute - apply credit delta: %w", ErrInternal, err)
		}
		newBalance = balance

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrScheduleNotFound),
			errors.Is(err, ErrScheduleInactive),
			errors.Is(err, ErrClassInPast),
			errors.Is(err, ErrClassFull),
			errors.Is(err, ErrInsufficientCredits),
			errors.Is(err, ErrProfileNotFound):
			uc.logger.Warn("CreateBooking: rejected for user=%d, schedule=%d: %v",
				req.UserID, req.ClassScheduleID, err)
		default:
			uc.logger.Error("CreateBooking: failed for user=%d, schedule=%d: %v",
				req.UserID, req.ClassScheduleID, err)
		}
		return nil, err
	}

	uc.metrics.IncBookingCreated(classType.Name)
	uc.metrics.AddCreditsSpent(string(domain.TransactionBookingPayment), booking.CreditsUsed)

	uc.logger.Info("CreateBooking: booking=%d created for user=%d, schedule=%d, credits=%d, balance=%d",
		booking.ID, req.UserID, req.ClassScheduleID, booking.CreditsUsed, newBalance)

	return newResponse(booking, classType.Name, schedule.StartTime, newBalance), nil
}
