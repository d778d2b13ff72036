// Package cancel_booking реализует сценарий отмены бронирования.
// Отмена, возврат кредитов и освобождение места выполняются атомарно.
// Владелец может отменить не позднее, чем за два часа до начала занятия;
// администратор отменяет в любой момент.
package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/booking"
	profileRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/profile"
	scheduleRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
	"github.com/m04kA/SMC-StudioService/pkg/ptr"
)

const (
	initiatorUser  = "user"
	initiatorAdmin = "admin"
)

// UseCase сценарий отмены бронирования
type UseCase struct {
	bookings     BookingRepository
	schedules    ScheduleRepository
	profiles     ProfileRepository
	creditLedger CreditLedger
	txManager    TransactionManager
	metrics      MetricsCollector
	logger       Logger
	now          func() time.Time
}

// NewUseCase создает новый экземпляр сценария
func NewUseCase(
	bookings BookingRepository,
	schedules ScheduleRepository,
	profiles ProfileRepository,
	creditLedger CreditLedger,
	txManager TransactionManager,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookings:     bookings,
		schedules:    schedules,
		profiles:     profiles,
		creditLedger: creditLedger,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

// Execute отменяет бронирование и возвращает кредиты
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	var (
		refunded   int
		newBalance int
		initiator  = initiatorUser
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		b, err := uc.bookings.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Execute - get booking: %w", ErrInternal, err)
		}

		isAdmin, err := uc.isAdmin(txCtx, req.RequestingUserID)
		if err != nil {
			return err
		}
		if b.UserID != req.RequestingUserID && !isAdmin {
			return ErrAccessDenied
		}
		if isAdmin && b.UserID != req.RequestingUserID {
			initiator = initiatorAdmin
		}

		if b.IsCancelled() {
			return ErrAlreadyCancelled
		}
		if !b.CanBeCancelled() {
			return ErrNotCancellable
		}

		sched, err := uc.schedules.GetByIDForUpdate(txCtx, b.ClassScheduleID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return fmt.Errorf("%w: Execute - schedule %d missing for booking %d",
					ErrInternal, b.ClassScheduleID, b.ID)
			}
			return fmt.Errorf("%w: Execute - get schedule: %w", ErrInternal, err)
		}

		// Окно отмены действует только для владельца:
		// администратор отменяет занятия от имени студии в любой момент
		if !isAdmin && !domain.WithinCancellationWindow(sched.StartTime, uc.now()) {
			return ErrWindowClosed
		}

		// Cancel охраняется статусом confirmed: параллельная отмена того же
		// бронирования не пройдет дальше этой точки
		if err := uc.bookings.Cancel(txCtx, b.ID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrAlreadyCancelled
			}
			return fmt.Errorf("%w: Execute - cancel booking: %w", ErrInternal, err)
		}

		if err := uc.schedules.DecrementEnrolled(txCtx, sched.ID); err != nil {
			return fmt.Errorf("%w: Execute - decrement enrolled: %w", ErrInternal, err)
		}

		delta := ledger.Delta{
			UserID:      b.UserID,
			Amount:      b.CreditsUsed,
			Type:        domain.TransactionBookingRefund,
			Description: ptr.Ptr("Booking cancelled"),
			BookingID:   &b.ID,
		}
		if initiator == initiatorAdmin {
			delta.AdminUserID = &req.RequestingUserID
		}

		balance, err := uc.creditLedger.ApplyDelta(txCtx, delta)
		if err != nil {
			return fmt.Errorf("%w: Execute - refund credits: %w", ErrInternal, err)
		}

		refunded = b.CreditsUsed
		newBalance = balance
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound),
			errors.Is(err, ErrAccessDenied),
			errors.Is(err, ErrAlreadyCancelled),
			errors.Is(err, ErrNotCancellable),
			errors.Is(err, ErrWindowClosed):
			uc.logger.Warn("CancelBooking: rejected for booking=%d, user=%d: %v",
				req.BookingID, req.RequestingUserID, err)
		default:
			uc.logger.Error("CancelBooking: failed for booking=%d, user=%d: %v",
				req.BookingID, req.RequestingUserID, err)
		}
		return nil, err
	}

	uc.metrics.IncBookingCancelled(initiator)
	uc.metrics.AddCreditsIssued(string(domain.TransactionBookingRefund), refunded)

	uc.logger.Info("CancelBooking: booking=%d cancelled by user=%d (%s), refunded=%d, balance=%d",
		req.BookingID, req.RequestingUserID, initiator, refunded, newBalance)

	return &Response{
		BookingID:       req.BookingID,
		Status:          string(domain.StatusCancelled),
		CreditsRefunded: refunded,
		NewBalance:      newBalance,
	}, nil
}

// isAdmin проверяет роль запрашивающего пользователя
func (uc *UseCase) isAdmin(ctx context.Context, userID int64) (bool, error) {
	p, err := uc.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return false, ErrAccessDenied
		}
		return false, fmt.Errorf("%w: isAdmin - get profile: %w", ErrInternal, err)
	}
	return p.IsAdmin(), nil
}
