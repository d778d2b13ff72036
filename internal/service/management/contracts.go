package management

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

// ClassTypeRepository интерфейс репозитория типов классов
type ClassTypeRepository interface {
	Create(ctx context.Context, ct *domain.ClassType) (*domain.ClassType, error)
	GetByID(ctx context.Context, id int64) (*domain.ClassType, error)
	Update(ctx context.Context, ct *domain.ClassType) error
	Delete(ctx context.Context, id int64) error
}

// InstructorRepository интерфейс репозитория инструкторов
type InstructorRepository interface {
	Create(ctx context.Context, ins *domain.Instructor) (*domain.Instructor, error)
	GetByID(ctx context.Context, id int64) (*domain.Instructor, error)
	Update(ctx context.Context, ins *domain.Instructor) error
	Delete(ctx context.Context, id int64) error
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Create(ctx context.Context, s *domain.ClassSchedule) (*domain.ClassSchedule, error)
	GetByID(ctx context.Context, id int64) (*domain.ClassSchedule, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.ClassSchedule, error)
	Update(ctx context.Context, s *domain.ClassSchedule) error
	Delete(ctx context.Context, id int64) error
	CountByClassType(ctx context.Context, classTypeID int64) (int, error)
	CountByInstructor(ctx context.Context, instructorID int64) (int, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByScheduleID(ctx context.Context, scheduleID int64, onlyConfirmed bool) ([]*domain.Booking, error)
	CountConfirmedBySchedule(ctx context.Context, scheduleID int64) (int, error)
	Cancel(ctx context.Context, id int64) error
	DeleteBySchedule(ctx context.Context, scheduleID int64) error
}

// ProfileRepository интерфейс репозитория профилей
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
}

// CreditLedger интерфейс кредитного леджера (возвраты при каскадной отмене)
type CreditLedger interface {
	ApplyDelta(ctx context.Context, delta ledger.Delta) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
