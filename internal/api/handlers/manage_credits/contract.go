package manage_credits

import (
	"context"

	manageCredits "github.com/m04kA/SMC-StudioService/internal/usecase/manage_credits"
)

type ManageCreditsUseCase interface {
	Execute(ctx context.Context, req manageCredits.Request) (*manageCredits.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
