// Package ledger применяет знаковые кредитные дельты к профилям.
// Каждая дельта атомарно (а) добавляет строку в append-only леджер и
// (б) обновляет материализованный баланс профиля. Частичных записей
// не бывает: обе операции выполняются в одной транзакции.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	profileRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/profile"
)

// Delta запрос на изменение баланса
type Delta struct {
	UserID      int64
	Amount      int // Знаковое значение, не ноль
	Type        domain.TransactionType
	Description *string
	BookingID   *int64 // Обратная ссылка на бронирование (для booking_payment/booking_refund)
	AdminUserID *int64 // Инициатор для админских операций
}

// Service сервис кредитного леджера
type Service struct {
	profiles     ProfileRepository
	transactions TransactionRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр леджер-сервиса
func NewService(
	profiles ProfileRepository,
	transactions TransactionRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		profiles:     profiles,
		transactions: transactions,
		txManager:    txManager,
		logger:       logger,
	}
}

// ApplyDelta применяет кредитную дельту к профилю и возвращает новый баланс
// Если вызов происходит внутри внешней транзакции (booking engine),
// выполняется в ней; иначе открывает собственную
func (s *Service) ApplyDelta(ctx context.Context, delta Delta) (int, error) {
	if err := validateDelta(delta); err != nil {
		s.logger.Warn("ApplyDelta: validation failed for user=%d: %v", delta.UserID, err)
		return 0, err
	}

	var newBalance int

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Блокируем строку профиля: конкурентные дельты по одному профилю
		// не должны читать устаревший баланс
		p, err := s.profiles.GetByUserIDForUpdate(txCtx, delta.UserID)
		if err != nil {
			if errors.Is(err, profileRepo.ErrProfileNotFound) {
				return ErrProfileNotFound
			}
			return fmt.Errorf("%w: ApplyDelta - get profile: %w", ErrInternal, err)
		}

		newBalance = p.CreditBalance + delta.Amount
		if newBalance < 0 {
			s.logger.Warn("ApplyDelta: insufficient credits for user=%d: balance=%d, delta=%d",
				delta.UserID, p.CreditBalance, delta.Amount)
			return ErrInsufficientCredits
		}

		if _, err := s.transactions.Create(txCtx, &domain.CreditTransaction{
			UserID:      delta.UserID,
			Amount:      delta.Amount,
			Type:        delta.Type,
			Description: delta.Description,
			BookingID:   delta.BookingID,
			AdminUserID: delta.AdminUserID,
		}); err != nil {
			return fmt.Errorf("%w: ApplyDelta - create transaction: %w", ErrInternal, err)
		}

		if err := s.profiles.UpdateBalance(txCtx, delta.UserID, newBalance); err != nil {
			return fmt.Errorf("%w: ApplyDelta - update balance: %w", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	s.logger.Info("ApplyDelta: user=%d, type=%s, amount=%d, new_balance=%d",
		delta.UserID, delta.Type, delta.Amount, newBalance)

	return newBalance, nil
}

// GetUserTransactions возвращает историю транзакций пользователя
func (s *Service) GetUserTransactions(ctx context.Context, userID int64) ([]*domain.CreditTransaction, error) {
	transactions, err := s.transactions.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserTransactions: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserTransactions - repository error: %w", ErrInternal, err)
	}

	return transactions, nil
}

// validateDelta проверяет дельту перед применением
func validateDelta(delta Delta) error {
	if delta.Amount == 0 {
		return ErrZeroAmount
	}

	if !domain.ValidTransactionType(delta.Type) {
		return ErrInvalidType
	}

	// Начисляющие типы обязаны иметь положительную дельту, списывающие -
	// отрицательную
	switch delta.Type {
	case domain.TransactionCreditPurchase, domain.TransactionCreditAdded, domain.TransactionBookingRefund:
		if delta.Amount < 0 {
			return ErrAmountSignMismatch
		}
	case domain.TransactionCreditDeducted, domain.TransactionBookingPayment:
		if delta.Amount > 0 {
			return ErrAmountSignMismatch
		}
	}

	return nil
}
