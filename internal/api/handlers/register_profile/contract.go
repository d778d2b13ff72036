package register_profile

import (
	"context"

	registerProfile "github.com/m04kA/SMC-StudioService/internal/usecase/register_profile"
)

type RegisterProfileUseCase interface {
	Execute(ctx context.Context, req registerProfile.Request) (*registerProfile.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
