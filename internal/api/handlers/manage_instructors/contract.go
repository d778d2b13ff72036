package manage_instructors

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/service/management/models"
)

type ManagementService interface {
	ApplyInstructor(ctx context.Context, req models.InstructorRequest) (*models.InstructorResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
