package catalog

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// ClassTypeRepository интерфейс репозитория типов классов
type ClassTypeRepository interface {
	List(ctx context.Context, onlyActive bool) ([]*domain.ClassType, error)
}

// InstructorRepository интерфейс репозитория инструкторов
type InstructorRepository interface {
	List(ctx context.Context, onlyActive bool) ([]*domain.Instructor, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.ClassSchedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
