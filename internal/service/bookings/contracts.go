package bookings

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
	GetByScheduleID(ctx context.Context, scheduleID int64, onlyConfirmed bool) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ClassSchedule, error)
}

// ClassTypeRepository интерфейс репозитория типов классов
type ClassTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ClassType, error)
}

// InstructorRepository интерфейс репозитория инструкторов
type InstructorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Instructor, error)
}

// ProfileRepository интерфейс репозитория профилей
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
