package ledger

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль не найден
	ErrProfileNotFound = errors.New("ledger: profile not found")

	// ErrInsufficientCredits возвращается, когда списание опустило бы
	// баланс ниже нуля
	ErrInsufficientCredits = errors.New("ledger: insufficient credits")

	// ErrZeroAmount возвращается при попытке применить нулевую дельту
	ErrZeroAmount = errors.New("ledger: amount must be non-zero")

	// ErrInvalidType возвращается при неизвестном типе транзакции
	ErrInvalidType = errors.New("ledger: invalid transaction type")

	// ErrAmountSignMismatch возвращается, когда знак дельты не соответствует
	// типу транзакции (начисление с отрицательной суммой и наоборот)
	ErrAmountSignMismatch = errors.New("ledger: amount sign does not match transaction type")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("ledger: internal error")
)
