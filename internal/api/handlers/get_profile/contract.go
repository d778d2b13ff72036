package get_profile

import (
	"context"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

type ProfileService interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
