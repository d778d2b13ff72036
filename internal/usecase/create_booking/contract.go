package create_booking

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.ClassSchedule, error)
	IncrementEnrolled(ctx context.Context, id int64) error
}

// ClassTypeRepository интерфейс репозитория типов классов
type ClassTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ClassType, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
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
	IncBookingCreated(classType string)
	AddCreditsSpent(transactionType string, amount int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
