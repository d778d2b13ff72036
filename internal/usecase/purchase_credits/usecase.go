// Package purchase_credits реализует покупку пакета кредитов.
// Платёж проводится до начисления: кредиты появляются в леджере
// только после одобрения шлюза.
package purchase_credits

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/integrations/payments"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
	"github.com/m04kA/SMC-StudioService/pkg/ptr"
)

const currency = "USD"

// UseCase сценарий покупки кредитов
type UseCase struct {
	gateway      PaymentGateway
	creditLedger CreditLedger
	metrics      MetricsCollector
	logger       Logger
}

// NewUseCase создает новый экземпляр сценария
func NewUseCase(
	gateway PaymentGateway,
	creditLedger CreditLedger,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		gateway:      gateway,
		creditLedger: creditLedger,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute проводит платёж и начисляет кредиты выбранного пакета
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	pkg, ok := domain.FindCreditPackage(req.PackageID)
	if !ok {
		uc.logger.Warn("PurchaseCredits: unknown package %q for user=%d", req.PackageID, req.UserID)
		return nil, fmt.Errorf("%w: %q", ErrUnknownPackage, req.PackageID)
	}

	charge, err := uc.gateway.Charge(ctx, payments.ChargeRequest{
		AmountCents: int64(math.Round(pkg.Price * 100)),
		Currency:    currency,
		CardNumber:  req.Card.Number,
		ExpiryMonth: req.Card.ExpiryMonth,
		ExpiryYear:  req.Card.ExpiryYear,
		CVC:         req.Card.CVC,
		Description: fmt.Sprintf("Credit package: %s", pkg.Name),
	})
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidCard), errors.Is(err, payments.ErrCardExpired):
			uc.logger.Warn("PurchaseCredits: invalid card for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidCard, err)
		case errors.Is(err, payments.ErrPaymentDeclined):
			uc.logger.Warn("PurchaseCredits: payment declined for user=%d", req.UserID)
			return nil, ErrPaymentDeclined
		default:
			uc.logger.Error("PurchaseCredits: gateway error for user=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: Execute - charge: %v", ErrInternal, err)
		}
	}

	newBalance, err := uc.creditLedger.ApplyDelta(ctx, ledger.Delta{
		UserID:      req.UserID,
		Amount:      pkg.Credits,
		Type:        domain.TransactionCreditPurchase,
		Description: ptr.Ptr(fmt.Sprintf("Purchased %s (card ending %s)", pkg.Name, charge.CardLast4)),
	})
	if err != nil {
		if errors.Is(err, ledger.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		// Платёж прошел, а начисление - нет: фиксируем в логах для
		// ручного разбора, вернуть деньги мок-шлюз не умеет
		uc.logger.Error("PurchaseCredits: charged but failed to credit user=%d, payment=%s: %v",
			req.UserID, charge.TransactionID, err)
		return nil, fmt.Errorf("%w: Execute - apply credit delta: %v", ErrInternal, err)
	}

	uc.metrics.AddCreditsIssued(string(domain.TransactionCreditPurchase), pkg.Credits)

	uc.logger.Info("PurchaseCredits: user=%d bought %s (+%d credits), balance=%d, payment=%s",
		req.UserID, pkg.ID, pkg.Credits, newBalance, charge.TransactionID)

	return &Response{
		PackageID:     pkg.ID,
		CreditsAdded:  pkg.Credits,
		AmountCharged: pkg.Price,
		NewBalance:    newBalance,
		PaymentID:     charge.TransactionID,
		CardLast4:     charge.CardLast4,
	}, nil
}
