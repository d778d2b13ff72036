package list_schedules

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/catalog/models"
)

type CatalogService interface {
	ListSchedules(ctx context.Context, filter domain.ScheduleFilter) (*models.ScheduleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
