package manage_class_types

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/service/management/models"
)

type ManagementService interface {
	ApplyClassType(ctx context.Context, req models.ClassTypeRequest) (*models.ClassTypeResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
