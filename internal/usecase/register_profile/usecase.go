// Package register_profile реализует регистрацию профиля.
// Профиль и приветственные кредиты создаются одной транзакцией:
// зарегистрированный профиль без стартового баланса невозможен.
package register_profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	profileRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/profile"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
	"github.com/m04kA/SMC-StudioService/pkg/ptr"
)

// UseCase сценарий регистрации профиля
type UseCase struct {
	profiles     ProfileRepository
	creditLedger CreditLedger
	txManager    TransactionManager
	metrics      MetricsCollector
	logger       Logger
}

// NewUseCase создает новый экземпляр сценария
func NewUseCase(
	profiles ProfileRepository,
	creditLedger CreditLedger,
	txManager TransactionManager,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		profiles:     profiles,
		creditLedger: creditLedger,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute создает профиль и начисляет приветственные кредиты
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	if err := validate(req); err != nil {
		uc.logger.Warn("RegisterProfile: validation failed for user=%d: %v", req.UserID, err)
		return nil, err
	}

	var created *domain.Profile

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		p, err := uc.profiles.Create(txCtx, &domain.Profile{
			UserID:   req.UserID,
			Email:    strings.ToLower(strings.TrimSpace(req.Email)),
			FullName: strings.TrimSpace(req.FullName),
			Phone:    req.Phone,
			Role:     domain.RoleStudent,
		})
		if err != nil {
			if errors.Is(err, profileRepo.ErrProfileExists) {
				return ErrAlreadyRegistered
			}
			return fmt.Errorf("%w: Execute - create profile: %w", ErrInternal, err)
		}

		if _, err := uc.creditLedger.ApplyDelta(txCtx, ledger.Delta{
			UserID:      p.UserID,
			Amount:      domain.WelcomeCredits,
			Type:        domain.TransactionCreditAdded,
			Description: ptr.Ptr("Welcome credits"),
		}); err != nil {
			return fmt.Errorf("%w: Execute - welcome credits: %w", ErrInternal, err)
		}
		p.CreditBalance = domain.WelcomeCredits

		created = p
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyRegistered) {
			uc.logger.Warn("RegisterProfile: user=%d is already registered", req.UserID)
			return nil, ErrAlreadyRegistered
		}
		uc.logger.Error("RegisterProfile: failed for user=%d: %v", req.UserID, err)
		return nil, err
	}

	uc.metrics.AddCreditsIssued(string(domain.TransactionCreditAdded), domain.WelcomeCredits)

	uc.logger.Info("RegisterProfile: profile=%d created for user=%d with %d welcome credits",
		created.ID, created.UserID, domain.WelcomeCredits)

	return &Response{
		ProfileID:      created.ID,
		UserID:         created.UserID,
		Email:          created.Email,
		FullName:       created.FullName,
		Role:           string(created.Role),
		WelcomeCredits: domain.WelcomeCredits,
		CreditBalance:  created.CreditBalance,
	}, nil
}

func validate(req Request) error {
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.FullName) == "" {
		return fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	if len(req.FullName) > domain.MaxNameLength {
		return fmt.Errorf("%w: full name is longer than %d characters", ErrInvalidInput, domain.MaxNameLength)
	}
	return nil
}
