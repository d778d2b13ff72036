package list_class_types

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/service/catalog/models"
)

type CatalogService interface {
	ListClassTypes(ctx context.Context) (*models.ClassTypeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
