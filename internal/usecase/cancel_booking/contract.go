package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.ClassSchedule, error)
	DecrementEnrolled(ctx context.Context, id int64) error
}

// ProfileRepository интерфейс репозитория профилей
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
}

// CreditLedger интерфейс кредитного леджера
type CreditLedger interface {
	ApplyDelta(ctx context.Context, delta ledger.Delta) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsCollector интерфейс для бизнес-метрик
type MetricsCollector interface {
	IncBookingCancelled(initiator string)
	AddCreditsIssued(transactionType string, amount int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
