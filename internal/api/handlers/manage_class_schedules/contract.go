package manage_class_schedules

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/service/management/models"
)

type ManagementService interface {
	ApplySchedule(ctx context.Context, req models.ScheduleRequest) (*models.ScheduleResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
