// Package manage_credits реализует административную корректировку
// кредитного баланса: начисление бонусов и списание за нарушения.
// Каждая корректировка попадает в леджер с указанием инициатора.
package manage_credits

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	profileRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
)

// UseCase сценарий административной корректировки кредитов
type UseCase struct {
	profiles     ProfileRepository
	creditLedger CreditLedger
	metrics      MetricsCollector
	logger       Logger
}

// NewUseCase создает новый экземпляр сценария
func NewUseCase(
	profiles ProfileRepository,
	creditLedger CreditLedger,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		profiles:     profiles,
		creditLedger: creditLedger,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute применяет корректировку баланса от имени администратора
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if req.Amount == 0 {
		return nil, ErrZeroAmount
	}

	admin, err := uc.profiles.GetByUserID(ctx, req.AdminUserID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("%w: Execute - get admin profile: %v", ErrInternal, err)
	}
	if !admin.IsAdmin() {
		uc.logger.Warn("ManageCredits: user=%d is not an admin", req.AdminUserID)
		return nil, ErrAccessDenied
	}

	txType := domain.TransactionCreditAdded
	if req.Amount < 0 {
		txType = domain.TransactionCreditDeducted
	}

	newBalance, err := uc.creditLedger.ApplyDelta(ctx, ledger.Delta{
		UserID:      req.TargetUserID,
		Amount:      req.Amount,
		Type:        txType,
		Description: req.Reason,
		AdminUserID: &req.AdminUserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrProfileNotFound):
			return nil, ErrTargetNotFound
		case errors.Is(err, ledger.ErrInsufficientCredits):
			uc.logger.Warn("ManageCredits: deduction rejected for user=%d: balance below %d",
				req.TargetUserID, -req.Amount)
			return nil, ErrInsufficientCredits
		default:
			uc.logger.Error("ManageCredits: failed for user=%d by admin=%d: %v",
				req.TargetUserID, req.AdminUserID, err)
			return nil, fmt.Errorf("%w: Execute - apply credit delta: %v", ErrInternal, err)
		}
	}

	if req.Amount > 0 {
		uc.metrics.AddCreditsIssued(string(txType), req.Amount)
	} else {
		uc.metrics.AddCreditsSpent(string(txType), -req.Amount)
	}

	uc.logger.Info("ManageCredits: admin=%d adjusted user=%d by %d, balance=%d",
		req.AdminUserID, req.TargetUserID, req.Amount, newBalance)

	return &Response{
		TargetUserID: req.TargetUserID,
		Amount:       req.Amount,
		NewBalance:   newBalance,
	}, nil
}
