package purchase_credits

import (
	"context"

	purchaseCredits "github.com/m04kA/SMC-StudioService/internal/usecase/purchase_credits"
)

type PurchaseCreditsUseCase interface {
	Execute(ctx context.Context, req purchaseCredits.Request) (*purchaseCredits.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
