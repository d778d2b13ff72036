package list_instructors

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/service/catalog/models"
)

type CatalogService interface {
	ListInstructors(ctx context.Context) (*models.InstructorListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
